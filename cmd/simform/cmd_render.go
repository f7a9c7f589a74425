package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-simform/internal/config"
	"github.com/goliatone/go-simform/pkg/page"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		output     string
		withSample bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the host page HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.newPage(cmd.Context())
			if err != nil {
				return err
			}
			if withSample {
				for _, part := range p.Parts() {
					if _, ok := part.SampleText(); ok {
						if err := p.LoadSample(part.Binding.FormID); err != nil {
							return err
						}
					}
				}
			}
			renderer, err := newRenderer(a.cfg.Theme)
			if err != nil {
				return err
			}
			html, err := renderer.Render(cmd.Context(), p)
			if err != nil {
				return err
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(html)
				return err
			}
			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return fmt.Errorf("mkdir %s: %w", filepath.Dir(output), err)
			}
			if err := os.WriteFile(output, html, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			a.logger.Info("page written", zap.String("path", output), zap.Int("bytes", len(html)))
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&withSample, "sample", false, "pre-fill every form with its sample")
	return cmd
}

// newRenderer applies the configured theme tokens over the built-in manifest.
func newRenderer(cfg config.ThemeConfig) (*page.Renderer, error) {
	manifest := page.DefaultManifest()
	for key, value := range cfg.Tokens {
		manifest.Tokens[key] = value
	}
	name := cfg.Name
	if name == "" {
		name = manifest.Name
	}
	return page.NewRenderer(
		page.WithThemeSelector(page.NewManifestSelector(manifest)),
		page.WithTheme(name, cfg.Variant),
	)
}
