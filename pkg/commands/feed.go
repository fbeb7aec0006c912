package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ateliernotes/atelier/pkg/runner/feed"
	"github.com/ateliernotes/atelier/pkg/store"
)

func addFeed(topLevel *cobra.Command) {
	var lookback time.Duration
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "show upcoming reminders and calendar events",
		Example: `
atelier feed
atelier feed --lookback 48h
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			p, err := store.Load(cfg)
			if err != nil {
				return err
			}
			s := feed.Feed{
				Lookback:    lookback,
				Persistence: p,
			}
			if s.Lookback == 0 {
				s.Lookback = cfg.Lookback()
			}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().DurationVar(&lookback, "lookback", 0, "How far into the past to include events.")

	topLevel.AddCommand(cmd)
}
