/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"tgwire/pkg/config"
	"tgwire/pkg/dispatch"
	"tgwire/pkg/logger"
	"tgwire/pkg/method"
	"tgwire/pkg/schema"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tgwire",
	Short: "Telegram Bot API wire codec",
	Long:  "Decodes Bot API payloads into typed values, builds and sends outgoing method calls, and long-polls for updates.",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRuntime bundles what every networked command needs.
type appRuntime struct {
	cfg   *config.Config
	log   *slog.Logger
	table *schema.Table
}

// loadRuntime reads configuration, installs the process logger, and builds
// the schema table.
func loadRuntime(component string) (*appRuntime, error) {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	appLogger, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	slog.SetDefault(appLogger)

	table, err := method.Schema()
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}

	return &appRuntime{
		cfg:   cfg,
		log:   slog.Default().With("component", component),
		table: table,
	}, nil
}

// dispatcher validates the config and connects a dispatcher to the Bot API.
func (rt *appRuntime) dispatcher() (*dispatch.Dispatcher, error) {
	if err := rt.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return dispatch.New(rt.cfg.Telegram, rt.table, slog.Default())
}
