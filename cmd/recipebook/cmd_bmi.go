package main

import (
	"github.com/spf13/cobra"

	"recipebook-tracker/internal/app"
	"recipebook-tracker/internal/console"
)

func newBMICmd(c *cli) *cobra.Command {
	var height, weight string
	cmd := &cobra.Command{
		Use:     "bmi",
		Short:   "Calculate BMI, show food suggestions and save the record",
		Example: `  recipebook bmi --height 170 --weight 70`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := app.FormValues{}
			if cmd.Flags().Changed("height") {
				form[app.FieldHeight] = height
			}
			if cmd.Flags().Changed("weight") {
				form[app.FieldWeight] = weight
			}
			page := app.NewBMIPage(form, console.NewBMIView(c.out), c.client, c.runner, c.logger)
			_, err := page.Calculate()
			return err
		},
	}
	cmd.Flags().StringVar(&height, "height", "", "Height in centimetres")
	cmd.Flags().StringVar(&weight, "weight", "", "Weight in kilograms")
	return cmd
}
