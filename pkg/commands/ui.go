package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ateliernotes/atelier/pkg/runner/ui"
	"github.com/ateliernotes/atelier/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based editor",
		Example: `
atelier ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			p, err := store.Load(cfg)
			if err != nil {
				return err
			}
			i := ui.UI{Config: cfg, Persistence: p}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
