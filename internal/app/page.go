package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"recipebook-tracker/internal/flow"
	"recipebook-tracker/internal/ingredients"
)

// Page bundles the three flows of the tracker. Any of them may be nil when
// the page does not carry it.
type Page struct {
	BMI         *BMIPage
	Weight      *WeightPage
	Ingredients *ingredients.Manager

	form   Form
	runner *flow.Runner
}

// NewPage returns a page whose background requests run on runner. form is
// read by SubmitIngredient.
func NewPage(form Form, runner *flow.Runner) *Page {
	return &Page{form: form, runner: runner}
}

// Load draws the chart and loads the ingredient list concurrently and waits
// for both. One failing does not stop the other; the first error is returned.
func (p *Page) Load(ctx context.Context) error {
	var g errgroup.Group
	if p.Weight != nil {
		g.Go(func() error {
			_, err := p.Weight.Refresh(ctx)
			return err
		})
	}
	if p.Ingredients != nil {
		g.Go(func() error { return p.Ingredients.Load(ctx) })
	}
	return g.Wait()
}

// OnLoad starts the same requests as Load and returns at once.
func (p *Page) OnLoad() {
	if p.Weight != nil {
		p.Weight.RefreshAsync()
	}
	if p.Ingredients != nil {
		p.runner.Go("load-ingredients", p.Ingredients.Load)
	}
}

// SubmitIngredient adds whatever is in the ingredient field.
func (p *Page) SubmitIngredient() error {
	if p.form == nil || p.Ingredients == nil {
		return ErrMissingElement
	}
	name, ok := p.form.Value(FieldIngredient)
	if !ok {
		return ErrMissingElement
	}
	p.runner.Go("add-ingredient", func(ctx context.Context) error {
		return p.Ingredients.Add(ctx, name)
	})
	return nil
}

// DeleteIngredient starts a delete of name.
func (p *Page) DeleteIngredient(name string) {
	if p.Ingredients == nil {
		return
	}
	p.runner.Go("delete-ingredient", func(ctx context.Context) error {
		return p.Ingredients.Delete(ctx, name)
	})
}
