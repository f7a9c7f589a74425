// Command simform drives the auto driving car simulator forms from the
// terminal and serves the host page.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-simform/internal/config"
)

// app holds the state shared by the subcommands of one invocation.
type app struct {
	configPath string
	baseURL    string
	debug      bool

	cfg    config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "simform",
		Short:         "Auto driving car simulator client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&a.baseURL, "base-url", "", "origin the simulate endpoints resolve against")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newSubmitCmd(a),
		newSampleCmd(a),
		newInteractiveCmd(a),
		newRenderCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if strings.TrimSpace(a.baseURL) != "" {
		cfg.Client.BaseURL = a.baseURL
	}
	a.cfg = cfg

	if a.logger != nil {
		return nil
	}
	zcfg := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if a.debug {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}
