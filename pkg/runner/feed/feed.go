package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ateliernotes/atelier/pkg/app"
	"github.com/ateliernotes/atelier/pkg/printers"
	"github.com/ateliernotes/atelier/pkg/reminder"
	"github.com/ateliernotes/atelier/pkg/store"
)

type Feed struct {
	Lookback    time.Duration
	Persistence store.Persistence
}

func (n *Feed) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not build feed, no persistence")
	}
	if n.Lookback <= 0 {
		n.Lookback = reminder.DefaultLookback
	}
	svc := app.New(n.Persistence)
	session, err := svc.Bootstrap(ctx)
	if err != nil {
		return err
	}
	pages, err := svc.AllPages(ctx, session.User)
	if err != nil {
		return err
	}

	now := svc.Now()
	events := reminder.CollectEvents(pages, now, n.Lookback, time.Local)

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Feed(reminder.Partition(events, now))
	pp.Todos(pages, 10)
	return nil
}
