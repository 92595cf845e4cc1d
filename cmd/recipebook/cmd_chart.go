package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"recipebook-tracker/internal/app"
	"recipebook-tracker/internal/chart"
	"recipebook-tracker/internal/console"
)

func newChartCmd(c *cli) *cobra.Command {
	var out, format string
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Draw the weight history chart to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.cfg.Chart
			if format != "" {
				opts.Format = chart.Format(format)
			}
			if out == "" {
				out = "weight." + string(opts.Format)
			}

			session, err := chart.NewSession(console.NewFileCanvas(out), opts, c.logger)
			if err != nil {
				return err
			}
			drawn, err := app.NewWeightPage(c.client, session, c.runner, c.logger).Refresh(cmd.Context())
			if err != nil {
				return err
			}
			lo, hi := drawn.YRange()
			fmt.Fprintf(c.out, "Wrote %d points to %s (y %.1f to %.1f)\n", drawn.Points(), out, lo, hi)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default weight.<format>)")
	cmd.Flags().StringVar(&format, "format", "", "Image format: png or svg (default from chart options)")
	return cmd
}
