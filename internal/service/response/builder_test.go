package response

import (
	"errors"
	"testing"

	"github.com/seu-repo/songcast/internal/domain"
)

func TestSimple(t *testing.T) {
	resp, err := Simple("hello")
	if err != nil {
		t.Fatalf("Simple failed: %v", err)
	}
	if resp.Kind != domain.KindSimple {
		t.Errorf("expected simple kind, got %s", resp.Kind)
	}
	if resp.Speech != "hello" || resp.DisplayText != "hello" {
		t.Errorf("spoken and displayed text must match: %q / %q", resp.Speech, resp.DisplayText)
	}
}

func TestSimple_Empty(t *testing.T) {
	_, err := Simple("")
	if !errors.Is(err, domain.ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestRich_DisplayDefaultsToSpeech(t *testing.T) {
	resp, err := Rich(RichOptions{Speech: "spoken only"})
	if err != nil {
		t.Fatalf("Rich failed: %v", err)
	}
	if resp.DisplayText != "spoken only" {
		t.Errorf("display text should default to speech, got %q", resp.DisplayText)
	}
}

func TestRich_SpeechDefaultsToDisplay(t *testing.T) {
	resp, err := Rich(RichOptions{DisplayText: "X"})
	if err != nil {
		t.Fatalf("Rich failed: %v", err)
	}
	if resp.Speech != "X" || resp.DisplayText != "X" {
		t.Errorf("expected both texts to be X, got %q / %q", resp.Speech, resp.DisplayText)
	}
}

func TestRich_BothEmpty(t *testing.T) {
	_, err := Rich(RichOptions{})
	if !errors.Is(err, domain.ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestRich_IndependentTexts(t *testing.T) {
	resp, err := Rich(RichOptions{
		Speech:      "spoken",
		DisplayText: "displayed",
		Contexts:    []domain.Context{{Name: "music", Lifespan: 2}},
	})
	if err != nil {
		t.Fatalf("Rich failed: %v", err)
	}
	if resp.Speech != "spoken" || resp.DisplayText != "displayed" {
		t.Errorf("texts overwritten: %q / %q", resp.Speech, resp.DisplayText)
	}
	if len(resp.OutputContexts) != 1 {
		t.Errorf("output contexts lost: %+v", resp.OutputContexts)
	}
}

func TestDirective(t *testing.T) {
	resp := Directive(domain.Directive{
		Kind:         domain.DirectiveRegisterUpdate,
		UpdateIntent: "play_song",
		Frequency:    "DAILY",
	}, "Sure, daily it is.")

	if resp.Kind != domain.KindDirective {
		t.Errorf("expected directive kind, got %s", resp.Kind)
	}
	if resp.Directive == nil || resp.Directive.UpdateIntent != "play_song" {
		t.Errorf("directive payload lost: %+v", resp.Directive)
	}
}
