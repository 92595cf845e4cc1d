// Package app holds the page controllers: each reads its inputs, renders into
// a view and hands backend calls to a flow.Runner.
package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"recipebook-tracker/internal/api"
	"recipebook-tracker/internal/bmi"
	"recipebook-tracker/internal/flow"
	"recipebook-tracker/internal/logging"
)

// ErrMissingElement is returned when a page is wired without one of the
// inputs or outputs it needs.
var ErrMissingElement = errors.New("one or more page elements missing")

// Field names read from a Form.
const (
	FieldHeight     = "height"
	FieldWeight     = "weight"
	FieldIngredient = "ingredient"
)

// InvalidInputText is shown instead of a result when parsing fails.
const InvalidInputText = "Please enter valid height and weight!"

// Form is the input side of a page.
type Form interface {
	// Value returns the raw text of field id and whether the field exists.
	Value(id string) (string, bool)
}

// FormValues is a Form backed by a map.
type FormValues map[string]string

func (f FormValues) Value(id string) (string, bool) {
	v, ok := f[id]
	return v, ok
}

// BMIView displays a calculation.
type BMIView interface {
	ShowResult(text string)
	ShowSuggestions(foods []string)
}

// BMISubmitter persists a measurement.
type BMISubmitter interface {
	SubmitBMI(ctx context.Context, m bmi.Measurement) (*api.BMIRecord, error)
}

// BMIPage is the BMI calculator.
type BMIPage struct {
	form    Form
	view    BMIView
	backend BMISubmitter
	runner  *flow.Runner
	log     *zap.Logger
}

// NewBMIPage wires a calculator. form and view may be nil, in which case
// Calculate reports ErrMissingElement.
func NewBMIPage(form Form, view BMIView, backend BMISubmitter, runner *flow.Runner, log *zap.Logger) *BMIPage {
	return &BMIPage{form: form, view: view, backend: backend, runner: runner, log: logging.OrNop(log)}
}

// Calculate reads the form, renders the result with its suggestions and
// starts the submission in the background. Invalid input renders a hint and
// submits nothing.
func (p *BMIPage) Calculate() (bmi.Result, error) {
	if p.form == nil || p.view == nil {
		p.log.Error("bmi page not wired", zap.Error(ErrMissingElement))
		return bmi.Result{}, ErrMissingElement
	}
	height, okH := p.form.Value(FieldHeight)
	weight, okW := p.form.Value(FieldWeight)
	if !okH || !okW {
		p.log.Error("bmi form incomplete", zap.Bool("height", okH), zap.Bool("weight", okW))
		return bmi.Result{}, ErrMissingElement
	}

	m, err := bmi.Parse(height, weight)
	if err != nil {
		p.view.ShowResult(InvalidInputText)
		return bmi.Result{}, err
	}

	res := bmi.Compute(m)
	p.view.ShowResult(res.String())
	p.view.ShowSuggestions(bmi.Suggestions(res.Category))

	if p.backend != nil && p.runner != nil {
		p.runner.Go("submit-bmi", func(ctx context.Context) error {
			return p.submit(ctx, m)
		})
	}
	return res, nil
}

func (p *BMIPage) submit(ctx context.Context, m bmi.Measurement) error {
	rec, err := p.backend.SubmitBMI(ctx, m)
	if err != nil {
		if be, ok := api.AsBackendError(err); ok {
			p.log.Error("bmi submission rejected", zap.Int("status", be.Status), zap.String("error", be.Message))
		}
		return err
	}
	p.log.Info("bmi saved", zap.Float64("bmi", rec.BMI), zap.String("category", rec.Category))
	return nil
}
