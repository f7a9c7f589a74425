package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newSubmitCmd(a *app) *cobra.Command {
	var (
		part       string
		loadSample bool
		input      string
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a simulation form and print the answer",
		Long: `Submit fills the selected form, posts it to its simulate endpoint and prints
the plain text answer. Transmission failures print "An error occurred." and are
logged; HTTP error statuses print the body the backend returned.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if loadSample && cmd.Flags().Changed("input") {
				return errors.New("--sample and --input are mutually exclusive")
			}
			ctx := cmd.Context()
			p, err := a.newPage(ctx)
			if err != nil {
				return err
			}
			parts, err := selectParts(p, part)
			if err != nil {
				return err
			}

			for _, selected := range parts {
				switch {
				case loadSample:
					if err := p.LoadSample(selected.Binding.FormID); err != nil {
						return err
					}
				default:
					selected.Input.SetValue(input)
				}
			}

			g, gctx := errgroup.WithContext(ctx)
			for _, selected := range parts {
				pending := selected.Submitter.Submit(gctx)
				g.Go(func() error {
					return pending.Wait(gctx)
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(parts) == 1 {
				fmt.Fprintln(out, parts[0].Output.Text())
				return nil
			}
			for _, selected := range parts {
				fmt.Fprintf(out, "[%s]\n%s\n", selected.Binding.OutputID, selected.Output.Text())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&part, "part", "1", "form to submit: 1, 2 or all")
	cmd.Flags().BoolVar(&loadSample, "sample", false, "load the sample input before submitting")
	cmd.Flags().StringVar(&input, "input", "", "input text to submit")
	return cmd
}
