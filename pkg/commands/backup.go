package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ateliernotes/atelier/pkg/runner/backup"
	"github.com/ateliernotes/atelier/pkg/store"
)

func addExport(topLevel *cobra.Command) {
	output := ""
	cmd := &cobra.Command{
		Use:   "export",
		Short: "export the whole database as JSON",
		Example: `
atelier export
atelier export -o backup.json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := backup.Export{
				Output:      output,
				Persistence: p,
			}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout.")

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "replace the database with a JSON export",
		Example: `
atelier import backup.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := backup.Import{
				Input:       args[0],
				Persistence: p,
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
