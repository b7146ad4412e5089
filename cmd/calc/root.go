package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-chi-calculator/internal/client"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/tui"
)

type rootOptions struct {
	apiURL  string
	logFile string
	timeout time.Duration
}

// applyConfig fills every option whose flag was not set explicitly from cfg.
func (o *rootOptions) applyConfig(cmd *cobra.Command, cfg config.Config) {
	if !cmd.Flags().Changed("api-url") {
		o.apiURL = cfg.APIURL
	}
	if !cmd.Flags().Changed("log-file") {
		o.logFile = cfg.LogFile
	}
	if !cmd.Flags().Changed("timeout") {
		o.timeout = cfg.Timeout
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Terminal calculator backed by the calculator API",
		Long: `calc renders a keypad calculator in the terminal. Each "=" sends the
pending operation to the calculator API over HTTP and shows the result.`,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			opts.applyConfig(cmd, cfg)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.apiURL, "api-url", config.DefaultAPIURL, "calculator API base URL (env CALC_API_URL)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write JSON logs to this file (env CALC_LOG_FILE)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "per-request timeout, 0 for none (env CALC_TIMEOUT)")

	return cmd
}

func run(cmd *cobra.Command, opts *rootOptions) error {
	if err := observability.InitFileLogger(opts.logFile); err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer observability.SyncLogger()

	c, err := client.New(opts.apiURL,
		client.WithTimeout(opts.timeout),
		client.WithLogger(observability.Logger),
	)
	if err != nil {
		return err
	}

	observability.Logger.Info("calculator started", zap.String("api_url", c.BaseURL()))

	model := tui.New(c,
		tui.WithContext(cmd.Context()),
		tui.WithEndpoint(c.BaseURL()),
		tui.WithLogger(observability.Logger),
	)

	if _, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run(); err != nil {
		return fmt.Errorf("running calculator: %w", err)
	}
	return nil
}
