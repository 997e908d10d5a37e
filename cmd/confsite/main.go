// Command confsite previews and exports the conference site content.
//
//	confsite serve                      # preview server
//	confsite tables /2023/ --organized  # dump a page's tables as JSON
//	confsite colors 6                   # print a palette
//	confsite bag put drivepaths /seminarContent/a.pdf 1AbC
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/faa-hf/confsite/internal/config"
	_ "github.com/faa-hf/confsite/internal/core/tables" // Register conference kinds
	"github.com/faa-hf/confsite/internal/logging"
)

// app carries the loaded configuration to subcommands.
type app struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "confsite",
		Short:         "Conference site content tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			if err := godotenv.Overload(envFile); err != nil {
				slog.Debug("no .env file loaded", "file", envFile)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if v, _ := cmd.Flags().GetBool("verbose"); v {
				cfg.Logging.Level = "debug"
			}
			logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
			a.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().String("env-file", ".env", "Environment file to load before reading configuration")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newServeCmd(a),
		newTablesCmd(a),
		newColorsCmd(a),
		newBagCmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("confsite failed", "error", err)
		os.Exit(1)
	}
}
