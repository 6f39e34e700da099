// Package commands implements the sentinel CLI.
package commands

import (
	"sentinel/internal/app"
	"sentinel/internal/config"
	"sentinel/internal/scanner"
	"sentinel/internal/trust"
	"sentinel/internal/utils"

	"github.com/spf13/cobra"
)

// env is shared by subcommands once PersistentPreRunE has run.
type env struct {
	cfg     *config.Config
	engine  *scanner.Engine
	anchors *trust.Store
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	e := &env{}
	var logLevel string

	root := &cobra.Command{
		Use:          "sentinel",
		Short:        "Domain trust verdicts for .ng and beyond",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			utils.InitLogger(cfg.LogLevel)

			engine, anchors, err := app.NewEngine(cfg, nil)
			if err != nil {
				return err
			}
			e.cfg, e.engine, e.anchors = cfg, engine, anchors
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (default from LOG_LEVEL, else info)")
	root.AddCommand(scanCmd(e), anchorsCmd(e))
	return root
}
