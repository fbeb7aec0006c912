package ui

import (
	"context"
	"errors"

	"github.com/ateliernotes/atelier/pkg/ai"
	"github.com/ateliernotes/atelier/pkg/app"
	"github.com/ateliernotes/atelier/pkg/store"
	"github.com/ateliernotes/atelier/pkg/tui"
)

type UI struct {
	Config      store.Config
	Persistence store.Persistence
}

func (d *UI) Do(ctx context.Context) error {
	if d.Persistence == nil {
		return errors.New("can not open ui, no persistence")
	}

	var gen ai.Generator
	if d.Config != nil && d.Config.GeminiAPIKey() != "" {
		client, err := ai.NewClient(ctx, d.Config.GeminiAPIKey())
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		gen = client
	}

	svc := app.New(d.Persistence)
	if d.Config != nil {
		return tui.Run(svc, gen, d.Config.PollInterval(), d.Config.Lookback())
	}
	return tui.Run(svc, gen, 0, 0)
}
