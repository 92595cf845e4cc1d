package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"recipebook-tracker/internal/bmi"
	"recipebook-tracker/internal/console"
	"recipebook-tracker/internal/ingredients"
)

func newSuggestCmd(c *cli) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest dishes from your ingredients, or foods for a BMI category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if category != "" {
				cat, ok := bmi.ParseCategory(category)
				if !ok {
					return fmt.Errorf("unknown BMI category %q", category)
				}
				console.List(c.out, "Suggested Foods:", bmi.Suggestions(cat))
				return nil
			}

			names, err := c.client.Ingredients(cmd.Context())
			if err != nil {
				return err
			}
			console.List(c.out, "Suggestions", ingredients.Suggest(names))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "BMI category: underweight, normal, overweight or obese")
	return cmd
}
