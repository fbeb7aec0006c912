// Package invites manages workspace invitations for the local account.
package invites

import (
	"context"
	"errors"
	"fmt"

	"github.com/ateliernotes/atelier/pkg/app"
	"github.com/ateliernotes/atelier/pkg/printers"
	"github.com/ateliernotes/atelier/pkg/store"
	"github.com/ateliernotes/atelier/pkg/workspace"
)

type Invites struct {
	Accept  string // invitation id to accept
	Decline string // invitation id to decline
	Cancel  string // invitation id to withdraw
	Send    string // email address to invite
	Into    string // workspace id for --send
	Role    string // access level for --send

	Persistence store.Persistence
}

func (n *Invites) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not manage invitations, no persistence")
	}
	svc := app.New(n.Persistence)
	session, err := svc.Bootstrap(ctx)
	if err != nil {
		return err
	}

	switch {
	case n.Accept != "":
		if err := n.Persistence.AcceptInvitation(ctx, n.Accept, session.User); err != nil {
			return err
		}
		fmt.Println("invitation accepted")
		return nil
	case n.Decline != "":
		if err := n.Persistence.DeclineInvitation(ctx, n.Decline); err != nil {
			return err
		}
		fmt.Println("invitation declined")
		return nil
	case n.Cancel != "":
		if err := n.Persistence.CancelInvitation(ctx, n.Cancel); err != nil {
			return err
		}
		fmt.Println("invitation cancelled")
		return nil
	case n.Send != "":
		if n.Into == "" {
			return errors.New("sending an invitation needs --into <workspace-id>")
		}
		role := workspace.AccessLevel(n.Role)
		if n.Role == "" {
			role = workspace.CanEdit
		}
		if err := svc.Invite(ctx, session.User, n.Into, n.Send, role); err != nil {
			return err
		}
		fmt.Println("invitation sent to", n.Send)
		return nil
	}

	if len(session.Invitations) == 0 {
		fmt.Println("no pending invitations")
		return nil
	}
	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.InvitationsWithIDs(session.Invitations)
	return nil
}
