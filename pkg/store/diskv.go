// Package store persists accounts, workspaces, and invitations in a local
// diskv tree and notifies watchers of external changes.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"
	"github.com/rs/zerolog/log"

	"github.com/ateliernotes/atelier/pkg/block"
	"github.com/ateliernotes/atelier/pkg/page"
	"github.com/ateliernotes/atelier/pkg/workspace"
)

// Record kind prefixes. A key is "<kind>-<id>"; diskv maps the kind to a
// directory and the id to the file name.
const (
	kindUser       = "user"
	kindWorkspace  = "workspace"
	kindInvitation = "invitation"
)

var (
	// ErrNotFound is returned when a record id or email matches nothing.
	ErrNotFound = errors.New("store: not found")
	// ErrEmailTaken is returned by RegisterUser for a duplicate email.
	ErrEmailTaken = errors.New("store: email already registered")
	// ErrAlreadyMember is returned when inviting an existing member.
	ErrAlreadyMember = errors.New("store: user is already a member")
	// ErrAlreadyInvited is returned when a pending invitation already exists.
	ErrAlreadyInvited = errors.New("store: invitation already pending")
)

// Persistence is the storage contract for the workspace database.
type Persistence interface {
	RegisterUser(ctx context.Context, name, email string) (workspace.User, error)
	Login(ctx context.Context, email string) (workspace.User, error)
	UpdateUser(ctx context.Context, u workspace.User) error

	CreateWorkspace(ctx context.Context, w workspace.Workspace) error
	UpdateWorkspace(ctx context.Context, w workspace.Workspace) error
	GetWorkspace(ctx context.Context, id string) (workspace.Workspace, error)
	GetWorkspacesForUser(ctx context.Context, userID, email string) ([]workspace.Workspace, error)
	AddPage(ctx context.Context, workspaceID string, p page.Page) error
	UpdatePage(ctx context.Context, workspaceID string, p page.Page, now time.Time) error

	CreateInvitation(ctx context.Context, inv workspace.Invitation) error
	GetPendingInvitations(ctx context.Context, email string) ([]workspace.Invitation, error)
	AcceptInvitation(ctx context.Context, id string, u workspace.User) error
	DeclineInvitation(ctx context.Context, id string) error
	CancelInvitation(ctx context.Context, id string) error
	RemoveMember(ctx context.Context, workspaceID, memberID string) error
	UpdateMemberRole(ctx context.Context, workspaceID, memberID string, role workspace.AccessLevel) error

	ExportJSON(ctx context.Context) ([]byte, error)
	ImportJSON(ctx context.Context, data []byte) error

	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func keyToPathTransform(s string) *diskv.PathKey {
	kind, id, found := strings.Cut(s, "-")
	if !found {
		return &diskv.PathKey{FileName: s}
	}
	return &diskv.PathKey{
		Path:     []string{kind},
		FileName: id,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

func key(kind, id string) string { return kind + "-" + id }

func keyKind(k string) string {
	kind, _, _ := strings.Cut(k, "-")
	return kind
}

func (p *persistence) write(kind, id string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.d.Write(key(kind, id), data)
}

func (p *persistence) read(kind, id string, v interface{}) error {
	data, err := p.d.Read(key(kind, id))
	if err != nil {
		return ErrNotFound
	}
	return json.Unmarshal(data, v)
}

func (p *persistence) RegisterUser(ctx context.Context, name, email string) (workspace.User, error) {
	if _, err := p.Login(ctx, email); err == nil {
		return workspace.User{}, ErrEmailTaken
	}
	u := workspace.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Initials: initials(name),
	}
	if err := p.write(kindUser, u.ID, u); err != nil {
		return workspace.User{}, err
	}
	return u, nil
}

func (p *persistence) Login(ctx context.Context, email string) (workspace.User, error) {
	needle := strings.ToLower(email)
	for k := range p.d.Keys(ctx.Done()) {
		if keyKind(k) != kindUser {
			continue
		}
		data, err := p.d.Read(k)
		if err != nil {
			continue
		}
		var u workspace.User
		if err := json.Unmarshal(data, &u); err != nil {
			continue
		}
		if strings.ToLower(u.Email) == needle {
			return u, nil
		}
	}
	return workspace.User{}, ErrNotFound
}

func (p *persistence) UpdateUser(ctx context.Context, u workspace.User) error {
	return p.write(kindUser, u.ID, u)
}

func (p *persistence) CreateWorkspace(ctx context.Context, w workspace.Workspace) error {
	return p.write(kindWorkspace, w.ID, w)
}

func (p *persistence) UpdateWorkspace(ctx context.Context, w workspace.Workspace) error {
	return p.write(kindWorkspace, w.ID, w)
}

func (p *persistence) GetWorkspace(ctx context.Context, id string) (workspace.Workspace, error) {
	var w workspace.Workspace
	if err := p.read(kindWorkspace, id, &w); err != nil {
		return workspace.Workspace{}, err
	}
	return p.collectTrash(w), nil
}

// collectTrash drops expired trashed pages and, when anything was dropped,
// writes the pruned workspace back so the pages leave disk too.
func (p *persistence) collectTrash(w workspace.Workspace) workspace.Workspace {
	collected := w.CollectTrash(time.Now())
	if len(collected.Pages) != len(w.Pages) {
		if err := p.write(kindWorkspace, collected.ID, collected); err != nil {
			log.Warn().Err(err).Str("workspace", collected.ID).Msg("store: persist trash collection")
		}
	}
	return collected
}

// GetWorkspacesForUser returns every workspace the user belongs to, by id or
// email, trash-collected and sorted by name for a stable listing.
func (p *persistence) GetWorkspacesForUser(ctx context.Context, userID, email string) ([]workspace.Workspace, error) {
	var out []workspace.Workspace
	for k := range p.d.Keys(ctx.Done()) {
		if keyKind(k) != kindWorkspace {
			continue
		}
		data, err := p.d.Read(k)
		if err != nil {
			continue
		}
		var w workspace.Workspace
		if err := json.Unmarshal(data, &w); err != nil {
			continue
		}
		if !w.HasMember(userID, email) {
			continue
		}
		out = append(out, p.collectTrash(w))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (p *persistence) AddPage(ctx context.Context, workspaceID string, pg page.Page) error {
	w, err := p.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	return p.UpdateWorkspace(ctx, w.AddPage(pg))
}

func (p *persistence) UpdatePage(ctx context.Context, workspaceID string, pg page.Page, now time.Time) error {
	w, err := p.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	return p.UpdateWorkspace(ctx, w.UpdatePage(pg, now))
}

func (p *persistence) CreateInvitation(ctx context.Context, inv workspace.Invitation) error {
	w, err := p.GetWorkspace(ctx, inv.WorkspaceID)
	if err != nil {
		return err
	}
	if w.HasMember("", inv.ToEmail) {
		return ErrAlreadyMember
	}
	pending, err := p.GetPendingInvitations(ctx, inv.ToEmail)
	if err != nil {
		return err
	}
	for _, other := range pending {
		if other.WorkspaceID == inv.WorkspaceID {
			return ErrAlreadyInvited
		}
	}
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.Status == "" {
		inv.Status = workspace.InvitePending
	}
	if inv.Timestamp.IsZero() {
		inv.Timestamp = block.Timestamp{Time: time.Now()}
	}
	return p.write(kindInvitation, inv.ID, inv)
}

func (p *persistence) GetPendingInvitations(ctx context.Context, email string) ([]workspace.Invitation, error) {
	needle := strings.ToLower(email)
	var out []workspace.Invitation
	for k := range p.d.Keys(ctx.Done()) {
		if keyKind(k) != kindInvitation {
			continue
		}
		data, err := p.d.Read(k)
		if err != nil {
			continue
		}
		var inv workspace.Invitation
		if err := json.Unmarshal(data, &inv); err != nil {
			continue
		}
		if inv.Status == workspace.InvitePending && strings.ToLower(inv.ToEmail) == needle {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp.Time) })
	return out, nil
}

// AcceptInvitation marks the invitation accepted and adds the user to the
// workspace with the invited role.
func (p *persistence) AcceptInvitation(ctx context.Context, id string, u workspace.User) error {
	var inv workspace.Invitation
	if err := p.read(kindInvitation, id, &inv); err != nil {
		return err
	}
	w, err := p.GetWorkspace(ctx, inv.WorkspaceID)
	if err != nil {
		return err
	}
	if !w.HasMember(u.ID, u.Email) {
		w.Members = append(w.Members, workspace.Member{
			ID:     u.ID,
			Email:  u.Email,
			Name:   u.Name,
			Avatar: u.Initials,
			Role:   inv.Role,
		})
		if err := p.UpdateWorkspace(ctx, w); err != nil {
			return err
		}
	}
	inv.Status = workspace.InviteAccepted
	return p.write(kindInvitation, inv.ID, inv)
}

func (p *persistence) DeclineInvitation(ctx context.Context, id string) error {
	var inv workspace.Invitation
	if err := p.read(kindInvitation, id, &inv); err != nil {
		return err
	}
	inv.Status = workspace.InviteDeclined
	return p.write(kindInvitation, inv.ID, inv)
}

func (p *persistence) CancelInvitation(ctx context.Context, id string) error {
	return p.d.Erase(key(kindInvitation, id))
}

func (p *persistence) RemoveMember(ctx context.Context, workspaceID, memberID string) error {
	w, err := p.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	members := make([]workspace.Member, 0, len(w.Members))
	for _, m := range w.Members {
		if m.ID != memberID {
			members = append(members, m)
		}
	}
	w.Members = members
	return p.UpdateWorkspace(ctx, w)
}

func (p *persistence) UpdateMemberRole(ctx context.Context, workspaceID, memberID string, role workspace.AccessLevel) error {
	w, err := p.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	for i := range w.Members {
		if w.Members[i].ID == memberID {
			w.Members[i].Role = role
			return p.UpdateWorkspace(ctx, w)
		}
	}
	return ErrNotFound
}

// dump is the JSON envelope for export and import.
type dump struct {
	Users       []workspace.User       `json:"users"`
	Workspaces  []workspace.Workspace  `json:"workspaces"`
	Invitations []workspace.Invitation `json:"invitations"`
}

// ExportJSON serializes the whole database, pretty-printed for hand editing.
func (p *persistence) ExportJSON(ctx context.Context) ([]byte, error) {
	d := dump{
		Users:       []workspace.User{},
		Workspaces:  []workspace.Workspace{},
		Invitations: []workspace.Invitation{},
	}
	for k := range p.d.Keys(ctx.Done()) {
		data, err := p.d.Read(k)
		if err != nil {
			continue
		}
		switch keyKind(k) {
		case kindUser:
			var u workspace.User
			if json.Unmarshal(data, &u) == nil {
				d.Users = append(d.Users, u)
			}
		case kindWorkspace:
			var w workspace.Workspace
			if json.Unmarshal(data, &w) == nil {
				d.Workspaces = append(d.Workspaces, w)
			}
		case kindInvitation:
			var inv workspace.Invitation
			if json.Unmarshal(data, &inv) == nil {
				d.Invitations = append(d.Invitations, inv)
			}
		}
	}
	sort.Slice(d.Users, func(i, j int) bool { return d.Users[i].ID < d.Users[j].ID })
	sort.Slice(d.Workspaces, func(i, j int) bool { return d.Workspaces[i].ID < d.Workspaces[j].ID })
	sort.Slice(d.Invitations, func(i, j int) bool { return d.Invitations[i].ID < d.Invitations[j].ID })
	return json.MarshalIndent(d, "", "  ")
}

// ImportJSON replaces the database with the given export. The payload is
// validated up front; nothing is written on a malformed dump, so a failed
// import leaves the existing data intact.
func (p *persistence) ImportJSON(ctx context.Context, data []byte) error {
	var d dump
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("store: invalid import: %w", err)
	}
	if d.Users == nil || d.Workspaces == nil {
		return errors.New("store: invalid import: missing users or workspaces")
	}

	var keys []string
	for k := range p.d.Keys(ctx.Done()) {
		keys = append(keys, k)
	}
	for _, k := range keys {
		if err := p.d.Erase(k); err != nil {
			return err
		}
	}

	for _, u := range d.Users {
		if err := p.write(kindUser, u.ID, u); err != nil {
			return err
		}
	}
	for _, w := range d.Workspaces {
		if err := p.write(kindWorkspace, w.ID, w); err != nil {
			return err
		}
	}
	for _, inv := range d.Invitations {
		if err := p.write(kindInvitation, inv.ID, inv); err != nil {
			return err
		}
	}
	return nil
}

func initials(name string) string {
	fields := strings.Fields(name)
	var b strings.Builder
	for i, f := range fields {
		if i >= 2 {
			break
		}
		b.WriteString(strings.ToUpper(string([]rune(f)[0])))
	}
	return b.String()
}
