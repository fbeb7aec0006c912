package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ateliernotes/atelier/pkg/ai"
	"github.com/ateliernotes/atelier/pkg/runner/ask"
	"github.com/ateliernotes/atelier/pkg/store"
)

func addAsk(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "ask the assistant a question",
		Example: `
atelier ask draft a packing list for a weekend trip
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			var gen ai.Generator
			if cfg.GeminiAPIKey() != "" {
				client, err := ai.NewClient(ctx, cfg.GeminiAPIKey())
				if err != nil {
					return err
				}
				defer func() { _ = client.Close() }()
				gen = client
			}
			s := ask.Ask{
				Prompt:    strings.Join(args, " "),
				Generator: gen,
			}
			return s.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}
