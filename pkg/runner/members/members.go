// Package members lists and manages workspace membership.
package members

import (
	"context"
	"errors"
	"fmt"

	"github.com/ateliernotes/atelier/pkg/app"
	"github.com/ateliernotes/atelier/pkg/printers"
	"github.com/ateliernotes/atelier/pkg/store"
	"github.com/ateliernotes/atelier/pkg/workspace"
)

type Members struct {
	Workspace string // workspace id for --remove and --role
	Remove    string // member id to remove
	Member    string // member id for --role
	Role      string // new access level

	Persistence store.Persistence
}

func (n *Members) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not manage members, no persistence")
	}
	svc := app.New(n.Persistence)
	session, err := svc.Bootstrap(ctx)
	if err != nil {
		return err
	}

	switch {
	case n.Remove != "":
		if n.Workspace == "" {
			return errors.New("removing a member needs --workspace <id>")
		}
		if err := n.Persistence.RemoveMember(ctx, n.Workspace, n.Remove); err != nil {
			return err
		}
		fmt.Println("member removed")
		return nil
	case n.Role != "":
		if n.Workspace == "" || n.Member == "" {
			return errors.New("changing a role needs --workspace <id> and --member <id>")
		}
		if err := n.Persistence.UpdateMemberRole(ctx, n.Workspace, n.Member, workspace.AccessLevel(n.Role)); err != nil {
			return err
		}
		fmt.Println("role updated")
		return nil
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	for _, w := range session.Workspaces {
		pp.Workspace(w)
		pp.Members(w)
	}
	return nil
}
