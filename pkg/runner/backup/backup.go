// Package backup implements whole-database export and import.
package backup

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ateliernotes/atelier/pkg/store"
)

type Export struct {
	Output      string // file path, or empty for stdout
	Persistence store.Persistence
}

func (n *Export) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not export, no persistence")
	}
	data, err := n.Persistence.ExportJSON(ctx)
	if err != nil {
		return err
	}
	if n.Output == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(n.Output, data, 0o644)
}

type Import struct {
	Input       string
	Persistence store.Persistence
}

func (n *Import) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not import, no persistence")
	}
	if n.Input == "" {
		return errors.New("no input file given")
	}
	data, err := os.ReadFile(n.Input)
	if err != nil {
		return err
	}
	if err := n.Persistence.ImportJSON(ctx, data); err != nil {
		return err
	}
	fmt.Println("imported", n.Input)
	return nil
}
