// Package cli wires the website's commands: serve (the default) and
// version.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pytogo/website/pkg/config"
	"github.com/pytogo/website/pkg/observability/logger"
	"github.com/pytogo/website/pkg/version"
)

const (
	serviceName = "pytogo-website"
	envPrefix   = "PYTOGO"
)

// NewRootCommand builds the root command. Running it without a
// subcommand starts the server.
func NewRootCommand() *cobra.Command {
	var cfgPath string

	rootCmd := &cobra.Command{
		Use:          serviceName,
		Short:        "Python Togo community website",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config-file", "c", "", "config file path")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Current(serviceName)
			fmt.Printf("Service:    %s\n", info.Service)
			fmt.Printf("Version:    %s\n", info.Version)
			fmt.Printf("Commit:     %s\n", info.Commit)
			fmt.Printf("Build Time: %s\n", info.BuildTime)
		},
	})

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the website servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfigAndLogger(cfgPath)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, log)
		},
	}
	rootCmd.AddCommand(serveCmd)
	rootCmd.RunE = serveCmd.RunE

	return rootCmd
}

// Execute runs the CLI with a signal-aware context so SIGINT/SIGTERM
// trigger graceful shutdown.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfigAndLogger(cfgPath string) (*config.Config, logger.Logger, error) {
	cfg, err := config.NewViperLoader(cfgPath, envPrefix).
		WithServiceNameDefault(serviceName).
		Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.NewZapLogger(logger.Config{
		Level:  logger.LogLevel(cfg.Observability.LogLevel),
		Format: logger.LogFormat(cfg.Observability.LogFormat),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}
