package toolreg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/averhoef/thesisflow/internal/llm"
)

var ErrMissingParam = errors.New("missing parameter")

func requireParam(params Params, key string) (string, error) {
	v := strings.TrimSpace(params[key])
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingParam, key)
	}
	return v, nil
}

// citationTool formats a reference in APA style. It is fully local and
// works without the model backend.
type citationTool struct{}

// NewCitationTool returns the APA citation formatter.
func NewCitationTool() Tool { return &citationTool{} }

func (t *citationTool) Name() string { return "cite" }

func (t *citationTool) Description() string {
	return "Format a reference in APA style (params: authors, year, title; optional: journal, volume, pages, publisher)"
}

func (t *citationTool) Invoke(_ context.Context, params Params) (*Result, error) {
	authors, err := requireParam(params, "authors")
	if err != nil {
		return nil, err
	}
	year, err := requireParam(params, "year")
	if err != nil {
		return nil, err
	}
	title, err := requireParam(params, "title")
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s). %s.", authors, year, strings.TrimSuffix(title, "."))

	if journal := strings.TrimSpace(params["journal"]); journal != "" {
		fmt.Fprintf(&b, " %s", journal)
		if volume := strings.TrimSpace(params["volume"]); volume != "" {
			fmt.Fprintf(&b, ", %s", volume)
		}
		if pages := strings.TrimSpace(params["pages"]); pages != "" {
			fmt.Fprintf(&b, ", %s", pages)
		}
		b.WriteString(".")
	} else if publisher := strings.TrimSpace(params["publisher"]); publisher != "" {
		fmt.Fprintf(&b, " %s.", publisher)
	}

	citation := b.String()
	return &Result{
		Summary: citation,
		Fields:  map[string]string{"style": "APA", "citation": citation},
	}, nil
}

// modelTool is the shared shape of tools that delegate to the model
// backend with a fixed system prompt.
type modelTool struct {
	client      llm.Client
	name        string
	description string
	system      string
}

func (t *modelTool) Name() string        { return t.name }
func (t *modelTool) Description() string { return t.description }

func (t *modelTool) Invoke(ctx context.Context, params Params) (*Result, error) {
	text, err := requireParam(params, "text")
	if err != nil {
		return nil, err
	}
	resp, err := t.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskAssist,
		SystemPrompt: t.system,
		UserPrompt:   text,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.name, err)
	}
	return &Result{
		Summary: strings.TrimSpace(resp.Text),
		Fields:  map[string]string{"model": resp.Model},
	}, nil
}

// NewGrammarTool returns a model-backed academic grammar and style
// checker.
func NewGrammarTool(client llm.Client) Tool {
	return &modelTool{
		client:      client,
		name:        "grammar",
		description: "Check a passage for grammar and academic style issues (params: text)",
		system: "You are an academic writing assistant. Review the passage for " +
			"grammar, clarity, and academic tone. List concrete issues and " +
			"suggest corrections. Do not rewrite the whole passage.",
	}
}

// NewSummarizerTool returns a model-backed abstract/summary generator.
func NewSummarizerTool(client llm.Client) Tool {
	return &modelTool{
		client:      client,
		name:        "summarize",
		description: "Summarize a passage of thesis text (params: text)",
		system: "You are an academic writing assistant. Summarize the passage " +
			"in at most five sentences, preserving the key claims and findings.",
	}
}
