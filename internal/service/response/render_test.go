package response

import (
	"encoding/json"
	"testing"

	"github.com/seu-repo/songcast/internal/domain"
)

func TestRender_SurfaceShapesDiffer(t *testing.T) {
	resp, err := Rich(RichOptions{Speech: "hello", DisplayText: "hi there"})
	if err != nil {
		t.Fatalf("Rich failed: %v", err)
	}

	google := Render(resp, domain.SourceGoogle)
	generic := Render(resp, "")

	if google.Data == nil || google.Data.Google == nil {
		t.Fatal("assistant render must carry the native envelope")
	}
	if generic.Data != nil {
		t.Fatal("generic render must not carry the native envelope")
	}

	// Same spoken/displayed content on both shapes.
	if google.Speech != generic.Speech || google.DisplayText != generic.DisplayText {
		t.Errorf("content diverged: %q/%q vs %q/%q",
			google.Speech, google.DisplayText, generic.Speech, generic.DisplayText)
	}

	items := google.Data.Google.RichResponse.Items
	if len(items) != 1 || items[0].SimpleResponse == nil {
		t.Fatalf("expected one simple response item, got %+v", items)
	}
	if items[0].SimpleResponse.TextToSpeech != "hello" || items[0].SimpleResponse.DisplayText != "hi there" {
		t.Errorf("simple response item content wrong: %+v", items[0].SimpleResponse)
	}
}

func TestRender_EndConversationUsesFinalResponse(t *testing.T) {
	resp, err := Rich(RichOptions{Speech: "bye", EndConversation: true})
	if err != nil {
		t.Fatalf("Rich failed: %v", err)
	}

	payload := Render(resp, domain.SourceGoogle)
	env := payload.Data.Google
	if env.ExpectUserResponse {
		t.Error("final response must not expect user input")
	}
	if env.FinalResponse == nil || env.RichResponse != nil {
		t.Errorf("expected finalResponse envelope, got %+v", env)
	}
}

func TestRender_MediaContinuing(t *testing.T) {
	payload := Render(Media(testSong, true, ""), domain.SourceGoogle)
	env := payload.Data.Google

	if !env.ExpectUserResponse {
		t.Error("continuing media must expect user input")
	}
	if len(env.ExpectedInputs) != 1 {
		t.Fatalf("expected one expected input, got %d", len(env.ExpectedInputs))
	}
	rich := env.ExpectedInputs[0].InputPrompt.RichInitialPrompt
	if len(rich.Items) != 2 {
		t.Fatalf("expected simple + media items, got %d", len(rich.Items))
	}
	media := rich.Items[1].MediaResponse
	if media == nil || media.MediaType != "AUDIO" {
		t.Fatalf("missing audio media response: %+v", rich.Items[1])
	}
	obj := media.MediaObjects[0]
	if obj.Name != testSong.Title || obj.ContentURL != testSong.AudioURL {
		t.Errorf("media object fields wrong: %+v", obj)
	}
	if obj.LargeImage == nil || obj.LargeImage.URL != testSong.ImageURL {
		t.Errorf("artwork missing: %+v", obj.LargeImage)
	}
	if len(rich.Suggestions) != 3 {
		t.Errorf("continuing media must carry 3 chips, got %d", len(rich.Suggestions))
	}
}

func TestRender_MediaFinal(t *testing.T) {
	payload := Render(Media(testSong, false, ""), "")
	env := payload.Data.Google

	if env == nil {
		t.Fatal("media render always carries the native envelope")
	}
	if env.ExpectUserResponse {
		t.Error("final media must not expect user input")
	}
	if env.FinalResponse == nil {
		t.Fatal("final media must use finalResponse")
	}
	if len(env.FinalResponse.RichResponse.Suggestions) != 0 {
		t.Error("final media must carry no suggestion chips")
	}
}

func TestRender_NewSurfaceDirective(t *testing.T) {
	resp := Directive(domain.Directive{
		Kind:              domain.DirectiveNewSurface,
		Context:           "Sure, I can send you updates.",
		NotificationTitle: "Sample Update",
		Capabilities:      []domain.Capability{domain.CapabilityScreenOutput},
	}, "Sure, I can send you updates.")

	payload := Render(resp, domain.SourceGoogle)
	si := payload.Data.Google.SystemIntent
	if si == nil || si.Intent != "actions.intent.NEW_SURFACE" {
		t.Fatalf("expected NEW_SURFACE system intent, got %+v", si)
	}
	if si.Data.Context != "Sure, I can send you updates." || si.Data.NotificationTitle != "Sample Update" {
		t.Errorf("new surface spec fields wrong: %+v", si.Data)
	}
	if len(si.Data.Capabilities) != 1 || si.Data.Capabilities[0] != string(domain.CapabilityScreenOutput) {
		t.Errorf("capabilities wrong: %v", si.Data.Capabilities)
	}
}

func TestRender_RegisterUpdateDirective(t *testing.T) {
	resp := Directive(domain.Directive{
		Kind:         domain.DirectiveRegisterUpdate,
		UpdateIntent: "play_song",
		Frequency:    "DAILY",
	}, "Want a song every day?")

	payload := Render(resp, domain.SourceGoogle)
	si := payload.Data.Google.SystemIntent
	if si.Intent != "actions.intent.REGISTER_UPDATE" {
		t.Fatalf("expected REGISTER_UPDATE intent, got %q", si.Intent)
	}
	if si.Data.Intent != "play_song" {
		t.Errorf("update intent wrong: %q", si.Data.Intent)
	}
	if si.Data.TriggerContext.TimeContext.Frequency != "DAILY" {
		t.Errorf("frequency wrong: %+v", si.Data.TriggerContext)
	}
}

func TestRender_UnescapedContentStaysStructured(t *testing.T) {
	hostile := testSong
	hostile.Title = `"quoted" {song} \ with controls`
	hostile.Description = "line\nbreak"

	payload := Render(Media(hostile, true, ""), domain.SourceGoogle)
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("rendered payload is not valid JSON: %v", err)
	}
}

func TestRender_ContextOut(t *testing.T) {
	resp, err := Rich(RichOptions{
		Speech:   "ok",
		Contexts: []domain.Context{{Name: "music", Lifespan: 2, Parameters: map[string]string{"genre": "pop"}}},
	})
	if err != nil {
		t.Fatalf("Rich failed: %v", err)
	}

	payload := Render(resp, "")
	if len(payload.ContextOut) != 1 {
		t.Fatalf("expected one output context, got %d", len(payload.ContextOut))
	}
	if payload.ContextOut[0].Name != "music" || payload.ContextOut[0].Parameters["genre"] != "pop" {
		t.Errorf("context out wrong: %+v", payload.ContextOut[0])
	}
}
