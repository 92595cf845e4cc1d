package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"recipebook-tracker/internal/console"
	"recipebook-tracker/internal/ingredients"
)

func newIngredientsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ingredients",
		Aliases: []string{"ing"},
		Short:   "List, add and delete ingredients",
	}

	manager := func() (*ingredients.Manager, *console.IngredientView) {
		view := console.NewIngredientView(c.out)
		return ingredients.NewManager(c.client, view, c.logger), view
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show your ingredients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _ := manager()
			return m.Load(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add [name]",
		Short: "Add an ingredient and show the updated list",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, view := manager()
			view.SetInput(strings.Join(args, " "))
			return m.Add(cmd.Context(), view.Input())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an ingredient and show the updated list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, view := manager()
			if err := m.Load(cmd.Context()); err != nil {
				return err
			}
			name := strings.Join(args, " ")
			item, ok := view.Find(name)
			if !ok {
				return fmt.Errorf("ingredient %q is not in your list", name)
			}
			return item.Delete(cmd.Context())
		},
	})

	return cmd
}
