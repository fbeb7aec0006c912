// Package ai wraps the Gemini API for the two assistant surfaces: free-form
// block completion and reminder parsing.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"github.com/ateliernotes/atelier/pkg/block"
)

// Fallback is shown in place of a completion when the model call fails.
const Fallback = "Sorry, I couldn't process that request right now."

// Generator defines the interface for text generation.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Client wraps the Gemini API client.
type Client struct {
	genaiClient *genai.Client
	model       *genai.GenerativeModel
}

// Ensure Client implements Generator.
var _ Generator = (*Client)(nil)

// NewClient creates a new Gemini client.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.0-flash")

	return &Client{
		genaiClient: client,
		model:       model,
	}, nil
}

// Close closes the client.
func (c *Client) Close() error {
	return c.genaiClient.Close()
}

// GenerateText generates text from a prompt.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	return sb.String(), nil
}

// Complete answers a block-level prompt, degrading to the fallback message
// instead of an error so the editor can always insert something.
func Complete(ctx context.Context, g Generator, prompt string) string {
	out, err := g.GenerateText(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("assistant completion failed")
		return Fallback
	}
	return strings.TrimSpace(out)
}

// reminderResponse is the JSON shape the model is asked to produce.
type reminderResponse struct {
	IsReminder  bool   `json:"isReminder"`
	Title       string `json:"title"`
	ISODateTime string `json:"isoDateTime"`
}

const reminderPromptFmt = `Current local date and time: %s.
Analyze the following note. If it describes something to do at a specific
date or time, respond with JSON {"isReminder": true, "title": <short task
title>, "isoDateTime": <RFC3339 timestamp>}. Resolve relative expressions
like "tomorrow" against the current time. The note may be in English or
Russian; answer the title in the note's language. If it is not a dated task,
respond with {"isReminder": false}.
Note: %s`

// ParseReminder asks the model whether the text is a dated task and extracts
// its title and timestamp. It satisfies the analyzer contract of the
// reminder pipeline: ok is false for non-reminders, err for transport or
// decode failures.
func ParseReminder(ctx context.Context, g Generator, text string, now time.Time) (block.Reminder, bool, error) {
	prompt := fmt.Sprintf(reminderPromptFmt, now.Format(time.RFC3339), text)
	raw, err := g.GenerateText(ctx, prompt)
	if err != nil {
		return block.Reminder{}, false, err
	}
	var resp reminderResponse
	if err := json.Unmarshal([]byte(extractJSON(raw)), &resp); err != nil {
		return block.Reminder{}, false, fmt.Errorf("decode reminder response: %w", err)
	}
	if !resp.IsReminder {
		return block.Reminder{}, false, nil
	}
	ts, err := time.Parse(time.RFC3339, resp.ISODateTime)
	if err != nil {
		return block.Reminder{}, false, fmt.Errorf("bad reminder timestamp %q: %w", resp.ISODateTime, err)
	}
	title := strings.TrimSpace(resp.Title)
	if title == "" {
		title = text
	}
	return block.Reminder{Title: title, Timestamp: block.Timestamp{Time: ts}}, true, nil
}

// extractJSON trims markdown fences and surrounding prose the model
// sometimes wraps around the object.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return raw
	}
	return raw[start : end+1]
}
