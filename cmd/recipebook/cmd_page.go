package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"recipebook-tracker/internal/app"
	"recipebook-tracker/internal/chart"
	"recipebook-tracker/internal/console"
	"recipebook-tracker/internal/ingredients"
)

func newPageCmd(c *cli) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Load the progress page: weight chart and ingredient list together",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = "weight." + string(c.cfg.Chart.Format)
			}
			session, err := chart.NewSession(console.NewFileCanvas(out), c.cfg.Chart, c.logger)
			if err != nil {
				return err
			}

			page := app.NewPage(nil, c.runner)
			page.Weight = app.NewWeightPage(c.client, session, c.runner, c.logger)
			page.Ingredients = ingredients.NewManager(c.client, console.NewIngredientView(c.out), c.logger)

			err = page.Load(cmd.Context())
			if live := session.Current(); live != nil {
				fmt.Fprintf(c.out, "Chart: %d points in %s\n", live.Points(), out)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Chart output file (default weight.<format>)")
	return cmd
}
