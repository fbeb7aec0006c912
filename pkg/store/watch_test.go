package store

import (
	"context"
	"testing"
	"time"

	"github.com/ateliernotes/atelier/pkg/workspace"
)

func TestWatchEmitsWorkspaceChanges(t *testing.T) {
	p := testStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to subscribe to directories before writing.
	time.Sleep(50 * time.Millisecond)

	u, err := p.RegisterUser(ctx, "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := p.CreateWorkspace(ctx, workspace.Default(u, time.Now())); err != nil {
		t.Fatalf("create workspace: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventKindChanged {
				switch evt.Kind {
				case kindUser, kindWorkspace:
					return
				default:
					t.Fatalf("unexpected kind %q", evt.Kind)
				}
			}
		case <-deadline:
			t.Fatal("timed out waiting for a change event")
		}
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	p := testStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}
