package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ateliernotes/atelier/pkg/runner/invites"
	"github.com/ateliernotes/atelier/pkg/store"
)

func addInvites(topLevel *cobra.Command) {
	s := invites.Invites{}
	cmd := &cobra.Command{
		Use:   "invites",
		Short: "list and answer workspace invitations",
		Example: `
atelier invites
atelier invites --accept 4f2c...
atelier invites --send grace@example.com --into <workspace-id> --role "Can view"
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

	cmd.Flags().StringVar(&s.Accept, "accept", "", "Accept the invitation with this id.")
	cmd.Flags().StringVar(&s.Decline, "decline", "", "Decline the invitation with this id.")
	cmd.Flags().StringVar(&s.Cancel, "cancel", "", "Withdraw a sent invitation by id.")
	cmd.Flags().StringVar(&s.Send, "send", "", "Invite this email address.")
	cmd.Flags().StringVar(&s.Into, "into", "", "Workspace id to invite into.")
	cmd.Flags().StringVar(&s.Role, "role", "", "Access level for --send, defaults to Can edit.")

	topLevel.AddCommand(cmd)
}
