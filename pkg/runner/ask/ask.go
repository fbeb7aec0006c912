package ask

import (
	"context"
	"errors"
	"fmt"

	"github.com/ateliernotes/atelier/pkg/ai"
)

type Ask struct {
	Prompt    string
	Generator ai.Generator
}

func (n *Ask) Do(ctx context.Context) error {
	if n.Generator == nil {
		return errors.New("assistant is not configured, set gemini_api_key")
	}
	if n.Prompt == "" {
		return errors.New("nothing to ask")
	}
	fmt.Println(ai.Complete(ctx, n.Generator, n.Prompt))
	return nil
}
