package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ateliernotes/atelier/pkg/runner/pages"
	"github.com/ateliernotes/atelier/pkg/store"
)

func addPages(topLevel *cobra.Command) {
	s := pages.Pages{}
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "list and manage pages across your workspaces",
		Example: `
atelier pages
atelier pages --trash
atelier pages --restore <page-id>
atelier pages --move <page-id> --under <parent-id>
atelier pages --template meeting
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s.Persistence = p
			return s.Do(context.Background())
		},
	}

	cmd.Flags().BoolVar(&s.ShowID, "id", false, "Show page ids.")
	cmd.Flags().BoolVar(&s.Trash, "trash", false, "Show trashed pages instead.")
	cmd.Flags().StringVar(&s.Restore, "restore", "", "Restore the trashed page with this id.")
	cmd.Flags().StringVar(&s.Remove, "rm", "", "Permanently delete the page with this id.")
	cmd.Flags().StringVar(&s.Move, "move", "", "Reparent the page with this id.")
	cmd.Flags().StringVar(&s.Under, "under", "", "New parent for --move, empty moves to the root.")
	cmd.Flags().StringVar(&s.Template, "template", "", "Create a page from a starter layout (meeting, project, journal).")

	topLevel.AddCommand(cmd)
}
