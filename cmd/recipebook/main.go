// Command recipebook drives the tracker pages from a terminal: BMI
// calculation, the weight chart and the ingredient book.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"recipebook-tracker/internal/api"
	"recipebook-tracker/internal/config"
	"recipebook-tracker/internal/flow"
	"recipebook-tracker/internal/logging"
)

// cli carries what every subcommand needs once the root has run.
type cli struct {
	out    io.Writer
	cfg    *config.Config
	logger *zap.Logger
	client *api.Client
	runner *flow.Runner

	baseURL   string
	csrfToken string
	logLevel  string
	verbose   bool
	timeout   time.Duration
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:           "recipebook",
		Short:         "Recipe and diet tracker client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.runner != nil {
				c.runner.Wait()
			}
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&c.baseURL, "base-url", "", "Backend base URL (or set RECIPEBOOK_BASE_URL)")
	root.PersistentFlags().StringVar(&c.csrfToken, "csrf-token", "", "Fixed CSRF token instead of reading it from the page")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error (or set LOG_LEVEL)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 0, "Per-request timeout (0 = none)")

	root.AddCommand(
		newBMICmd(c),
		newChartCmd(c),
		newIngredientsCmd(c),
		newSuggestCmd(c),
		newPageCmd(c),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.baseURL != "" {
		cfg.Client.BaseURL = c.baseURL
	}
	if c.csrfToken != "" {
		cfg.Client.CSRFToken = c.csrfToken
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Client.Timeout = c.timeout
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if c.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	c.logger, err = logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	c.client, err = api.New(cfg.Client.BaseURL, cfg.Client.ClientOptions(c.logger)...)
	if err != nil {
		return err
	}
	c.runner = flow.NewRunner(cmd.Context(), c.logger)
	return nil
}

func main() {
	root := newRootCmd(os.Stdout)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
