package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"recipebook-tracker/internal/api"
	"recipebook-tracker/internal/chart"
	"recipebook-tracker/internal/flow"
	"recipebook-tracker/internal/logging"
)

// SeriesSource fetches the stored weight history.
type SeriesSource interface {
	WeightSeries(ctx context.Context) (*api.Series, error)
}

// WeightPage draws the weight history into a chart session.
type WeightPage struct {
	source  SeriesSource
	session *chart.Session
	runner  *flow.Runner
	log     *zap.Logger
}

func NewWeightPage(source SeriesSource, session *chart.Session, runner *flow.Runner, log *zap.Logger) *WeightPage {
	return &WeightPage{source: source, session: session, runner: runner, log: logging.OrNop(log)}
}

// Refresh fetches the series and redraws the chart. Any failure is logged and
// the chart already on screen is left alone.
func (p *WeightPage) Refresh(ctx context.Context) (*chart.Chart, error) {
	if p.session == nil {
		p.log.Error("chart canvas not found", zap.Error(ErrMissingElement))
		return nil, ErrMissingElement
	}

	s, err := p.source.WeightSeries(ctx)
	if err != nil {
		p.log.Error("fetch weight data", zap.Error(err))
		return nil, fmt.Errorf("fetch weight data: %w", err)
	}
	if s.Len() == 0 && s.Message != "" {
		p.log.Info("no weight data", zap.String("message", s.Message))
	}

	c, err := p.session.Redraw(chart.Series{Labels: s.Labels, Values: s.Weights})
	if err != nil {
		p.log.Error("draw weight chart", zap.Int("points", s.Len()), zap.Error(err))
		return nil, fmt.Errorf("draw weight chart: %w", err)
	}
	return c, nil
}

// RefreshAsync starts Refresh on the runner.
func (p *WeightPage) RefreshAsync() {
	p.runner.Go("weight-chart", func(ctx context.Context) error {
		_, err := p.Refresh(ctx)
		return err
	})
}
