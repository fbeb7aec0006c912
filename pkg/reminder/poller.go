package reminder

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ateliernotes/atelier/pkg/page"
)

// DefaultPollInterval is how often the poller re-reads the store.
const DefaultPollInterval = 3 * time.Second

// Fetch loads the current pages from the store.
type Fetch func(ctx context.Context) ([]page.Page, error)

// Diff summarizes one poll cycle.
type Diff struct {
	Events  []Event
	Changed bool // the feed fingerprint moved since the last cycle
}

// Poller periodically rebuilds the event feed, reports changes, and fires
// due notifications through a dedup guard.
type Poller struct {
	Fetch    Fetch
	Notifier Notifier
	Interval time.Duration
	Lookback time.Duration
	Location *time.Location
	Now      func() time.Time

	dedup       *Dedup
	fingerprint string
}

// NewPoller wires a poller with defaults for interval, lookback, clock, and
// location.
func NewPoller(fetch Fetch, n Notifier) *Poller {
	return &Poller{
		Fetch:    fetch,
		Notifier: n,
		Interval: DefaultPollInterval,
		Lookback: DefaultLookback,
		Now:      time.Now,
		dedup:    NewDedup(),
	}
}

// Scan runs a single poll cycle: fetch, collect, notify, diff.
func (p *Poller) Scan(ctx context.Context) (Diff, error) {
	pages, err := p.Fetch(ctx)
	if err != nil {
		return Diff{}, err
	}
	now := p.Now()
	events := CollectEvents(pages, now, p.Lookback, p.Location)
	if p.Notifier != nil {
		p.dedup.Sweep(events, now, p.Notifier)
	}
	fp := fingerprint(events)
	changed := fp != p.fingerprint
	p.fingerprint = fp
	return Diff{Events: events, Changed: changed}, nil
}

// Run polls until the context is cancelled, delivering each cycle's diff to
// the callback. Fetch errors are logged and the loop keeps going.
func (p *Poller) Run(ctx context.Context, onDiff func(Diff)) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d, err := p.Scan(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("event poll failed")
				continue
			}
			if onDiff != nil {
				onDiff(d)
			}
		}
	}
}

// fingerprint is order-insensitive over event identity, so re-sorting or
// metadata churn without new events does not count as a change.
func fingerprint(events []Event) string {
	keys := make([]string, 0, len(events))
	for _, e := range events {
		keys = append(keys, e.Key())
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}
