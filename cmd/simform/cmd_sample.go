package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSampleCmd(a *app) *cobra.Command {
	var part string
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the sample input of a form",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.newPage(cmd.Context())
			if err != nil {
				return err
			}
			parts, err := selectParts(p, part)
			if err != nil {
				return err
			}
			for _, selected := range parts {
				text, ok := selected.SampleText()
				if !ok {
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&part, "part", "1", "form whose sample to print: 1, 2 or all")
	return cmd
}
