// Package response builds outbound fulfillment payloads: the surface-
// agnostic response union and its rendering into the generic JSON reply
// or the assistant-native rich envelope.
package response

import (
	"github.com/seu-repo/songcast/internal/domain"
)

// RichOptions collects the optional parts of a rich response. When only
// one of Speech/DisplayText is set, the other defaults to the same value.
type RichOptions struct {
	Speech      string
	DisplayText string
	Suggestions []string
	Card        *domain.Card
	Contexts    []domain.Context

	// EndConversation closes the conversation after this turn.
	EndConversation bool
}

// Simple builds a response whose spoken and displayed text are the same
// single string.
func Simple(text string) (*domain.Response, error) {
	if text == "" {
		return nil, domain.ErrEmptyResponse
	}
	return &domain.Response{
		Kind:        domain.KindSimple,
		Speech:      text,
		DisplayText: text,
	}, nil
}

// Rich builds a response with independent spoken and displayed text plus
// optional suggestions, card and output contexts. Both texts empty is a
// handler defect and fails with domain.ErrEmptyResponse.
func Rich(opts RichOptions) (*domain.Response, error) {
	speech, display := opts.Speech, opts.DisplayText
	if speech == "" {
		speech = display
	}
	if display == "" {
		display = speech
	}
	if speech == "" {
		return nil, domain.ErrEmptyResponse
	}

	return &domain.Response{
		Kind:            domain.KindRich,
		Speech:          speech,
		DisplayText:     display,
		Suggestions:     opts.Suggestions,
		Card:            opts.Card,
		OutputContexts:  opts.Contexts,
		EndConversation: opts.EndConversation,
	}, nil
}

// Directive wraps a platform system-intent request with the spoken line
// that accompanies it.
func Directive(d domain.Directive, speech string) *domain.Response {
	return &domain.Response{
		Kind:        domain.KindDirective,
		Speech:      speech,
		DisplayText: speech,
		Directive:   &d,
	}
}
