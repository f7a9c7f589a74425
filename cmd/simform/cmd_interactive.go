package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-simform/pkg/prompt"
)

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Fill and submit a form with terminal prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.newPage(cmd.Context())
			if err != nil {
				return err
			}
			session, err := prompt.NewSession(p, prompt.NewSurveyDriver(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			_, err = session.Run(cmd.Context())
			return err
		},
	}
}
