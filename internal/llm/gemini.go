// Package llm wraps the Gemini API for documentation prose. This is the
// only component in the tool that retries or applies timeouts; the
// extraction core never does either.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	genai "google.golang.org/genai"

	"github.com/docweave/docweave/internal/docs"
)

// ErrEmptyResponse is returned when the model produced no usable text.
var ErrEmptyResponse = errors.New("llm: empty response")

const (
	callTimeout    = 60 * time.Second
	initialBackoff = 2 * time.Second
)

// Client generates module prose via Gemini. It implements
// docs.ProseWriter.
type Client struct {
	cli        *genai.Client
	model      string
	maxRetries int
}

// NewClient builds a Gemini-backed prose writer. The genai client reads
// GEMINI_API_KEY from the environment.
func NewClient(ctx context.Context, model string, maxRetries int) (*Client, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("llm: creating client: %w", err)
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Client{cli: cli, model: model, maxRetries: maxRetries}, nil
}

// WriteModuleProse asks the model for a short prose description of one
// documentation module, retrying with exponential backoff.
func (c *Client) WriteModuleProse(ctx context.Context, chunk docs.ModuleChunk) (string, error) {
	prompt := buildPrompt(chunk)

	var lastErr error
	backoff := initialBackoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		text, err := c.generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("llm: after %d attempt(s): %w", c.maxRetries+1, lastErr)
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := c.cli.Models.GenerateContent(callCtx, c.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "text/plain"},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	text := resp.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func buildPrompt(chunk docs.ModuleChunk) string {
	var b strings.Builder
	b.WriteString("Write two short paragraphs of API documentation prose for the module below. ")
	b.WriteString("Describe what the endpoints do collectively; do not restate every route.\n\n")
	fmt.Fprintf(&b, "Module: %s\n\nEndpoints:\n", chunk.Name)
	for _, r := range chunk.Routes {
		fmt.Fprintf(&b, "- %s %s (handler %s)\n", r.Method, r.Path, r.Handler)
	}
	if len(chunk.Services) > 0 {
		b.WriteString("\nBacking services:\n")
		for _, s := range chunk.Services {
			fmt.Fprintf(&b, "- %s (%d method(s))\n", s.Name, len(s.Methods))
		}
	}
	return b.String()
}
