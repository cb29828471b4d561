// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package copywriter drafts marketing taglines for projects. It degrades
// to curated fallback copy whenever the model is unconfigured, errors out
// or returns nothing, so the admin form always gets a usable line.
package copywriter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Fallback copy returned instead of an error.
const (
	FallbackEmpty = "Elevate your lifestyle to new heights of sophistication and grace."
	FallbackError = "A sanctuary of unparalleled luxury designed for the most discerning residents."
)

// Writer produces project taglines.
type Writer struct {
	log      *slog.Logger
	model    string
	generate func(ctx context.Context, prompt string) (string, error)
}

// New creates a Writer backed by the OpenAI API. An empty apiKey disables
// the model; Tagline then always returns fallback copy.
func New(apiKey, model string, log *slog.Logger) *Writer {
	w := &Writer{log: log, model: model}
	if apiKey == "" {
		return w
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))
	w.generate = func(ctx context.Context, prompt string) (string, error) {
		completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: model,
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			Temperature: openai.Float(0.8),
		})
		if err != nil {
			return "", err
		}
		if len(completion.Choices) == 0 {
			return "", nil
		}
		return completion.Choices[0].Message.Content, nil
	}
	return w
}

// Tagline returns a two sentence marketing tagline for the project.
// It never returns an error: model failures are logged and replaced with
// fallback copy.
func (w *Writer) Tagline(ctx context.Context, title, location string) string {
	if w.generate == nil {
		return FallbackEmpty
	}

	prompt := fmt.Sprintf(
		"Write a captivating, luxurious 2-sentence marketing tagline for a real estate project named '%s' located in %s. Focus on exclusivity and elegance.",
		title, location)

	text, err := w.generate(ctx, prompt)
	if err != nil {
		w.log.Warn("tagline generation failed", "project", title, "error", err)
		return FallbackError
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return FallbackEmpty
	}
	return text
}

// Enabled reports whether a model is configured.
func (w *Writer) Enabled() bool {
	return w.generate != nil
}
