// Package ingredients manages the user's ingredient list: every mutation is
// followed by a full reload, and the view is always repainted from scratch.
package ingredients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"recipebook-tracker/internal/api"
	"recipebook-tracker/internal/logging"
)

// ErrEmptyName is returned by Add for blank input; no request is made.
var ErrEmptyName = errors.New("ingredient name is empty")

// Backend is the part of the API client the manager needs.
type Backend interface {
	Ingredients(ctx context.Context) ([]string, error)
	AddIngredient(ctx context.Context, name string) (string, error)
	DeleteIngredient(ctx context.Context, name string) (string, error)
}

// Item is one rendered ingredient with its own delete control.
type Item struct {
	Name   string
	Delete func(ctx context.Context) error
}

// View is where the list is displayed.
type View interface {
	// ShowItems replaces everything currently listed.
	ShowItems(items []Item)
	ClearInput()
	// Alert shows a blocking message to the user.
	Alert(msg string)
}

// Manager runs the add/delete/load round trips against the backend.
type Manager struct {
	backend Backend
	view    View
	log     *zap.Logger
}

// NewManager returns a manager rendering into view.
func NewManager(backend Backend, view View, log *zap.Logger) *Manager {
	return &Manager{backend: backend, view: view, log: logging.OrNop(log)}
}

// Add posts name and, on success, clears the input and refreshes the list.
// Only backend-reported errors are alerted; transport errors are logged.
func (m *Manager) Add(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		m.view.Alert("Please enter an ingredient!")
		return ErrEmptyName
	}

	msg, err := m.backend.AddIngredient(ctx, name)
	if err != nil {
		if be, ok := api.AsBackendError(err); ok {
			m.log.Error("add ingredient rejected", zap.String("name", name), zap.String("error", be.Message), zap.String("details", be.Details))
			m.view.Alert("Error: " + be.Message)
		} else {
			m.log.Error("add ingredient failed", zap.String("name", name), zap.Error(err))
		}
		return fmt.Errorf("add ingredient %q: %w", name, err)
	}

	m.log.Info("ingredient added", zap.String("name", name), zap.String("message", msg))
	m.view.ClearInput()
	return m.Refresh(ctx)
}

// Delete removes name without confirmation and refreshes the list.
func (m *Manager) Delete(ctx context.Context, name string) error {
	msg, err := m.backend.DeleteIngredient(ctx, name)
	if err != nil {
		m.log.Error("delete ingredient failed", zap.String("name", name), zap.Error(err))
		return fmt.Errorf("delete ingredient %q: %w", name, err)
	}
	m.log.Info("ingredient deleted", zap.String("name", name), zap.String("message", msg))
	return m.Refresh(ctx)
}

// Load fetches the list and repaints the view with one delete control per item.
// On failure the previous list stays on screen.
func (m *Manager) Load(ctx context.Context) error {
	names, err := m.backend.Ingredients(ctx)
	if err != nil {
		m.log.Error("load ingredients failed", zap.Error(err))
		return fmt.Errorf("load ingredients: %w", err)
	}

	items := make([]Item, 0, len(names))
	for _, name := range names {
		name := name
		items = append(items, Item{
			Name:   name,
			Delete: func(ctx context.Context) error { return m.Delete(ctx, name) },
		})
	}
	m.view.ShowItems(items)
	m.log.Debug("ingredients loaded", zap.Int("count", len(items)))
	return nil
}

// Refresh is the explicit reload round trip run after every mutation.
func (m *Manager) Refresh(ctx context.Context) error {
	return m.Load(ctx)
}
