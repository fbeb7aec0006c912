package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ateliernotes/atelier/pkg/runner/members"
	"github.com/ateliernotes/atelier/pkg/store"
)

func addMembers(topLevel *cobra.Command) {
	s := members.Members{}
	cmd := &cobra.Command{
		Use:   "members",
		Short: "list and manage workspace members",
		Example: `
atelier members
atelier members --workspace <id> --remove <member-id>
atelier members --workspace <id> --member <member-id> --role "Can view"
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

	cmd.Flags().StringVar(&s.Workspace, "workspace", "", "Workspace id to act on.")
	cmd.Flags().StringVar(&s.Remove, "remove", "", "Remove the member with this id.")
	cmd.Flags().StringVar(&s.Member, "member", "", "Member id for --role.")
	cmd.Flags().StringVar(&s.Role, "role", "", "New access level for --member.")

	topLevel.AddCommand(cmd)
}
