package webhook

import (
	"errors"
	"testing"

	"github.com/seu-repo/songcast/internal/domain"
)

func TestDecode_V1(t *testing.T) {
	body := []byte(`{
		"result": {
			"action": "input.play_song",
			"parameters": {"song-name": "Gangnam Style", "count": 2},
			"contexts": [
				{"name": "music", "lifespan": 2, "parameters": {"genre": "pop"}}
			]
		},
		"originalRequest": {
			"source": "google",
			"data": {
				"surface": {"capabilities": [
					{"name": "actions.capability.AUDIO_OUTPUT"},
					{"name": "actions.capability.SCREEN_OUTPUT"}
				]},
				"availableSurfaces": [
					{"capabilities": [{"name": "actions.capability.SCREEN_OUTPUT"}]}
				]
			}
		}
	}`)

	req, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if req.Version != domain.SchemaV1 {
		t.Errorf("expected schema v1, got %s", req.Version)
	}
	if req.IntentKey != "input.play_song" {
		t.Errorf("unexpected intent key: %q", req.IntentKey)
	}
	if req.Parameter("song-name") != "Gangnam Style" {
		t.Errorf("unexpected song-name: %q", req.Parameter("song-name"))
	}
	if req.Parameter("count") != "2" {
		t.Errorf("numeric slot not flattened: %q", req.Parameter("count"))
	}
	if !req.FromGoogle() {
		t.Error("expected request tagged as google source")
	}
	if !req.HasCapability(domain.CapabilityScreenOutput) {
		t.Error("expected screen capability on current device")
	}
	if !req.HasAvailableCapability(domain.CapabilityScreenOutput) {
		t.Error("expected screen capability among available surfaces")
	}
	if len(req.Contexts) != 1 || req.Contexts[0].Name != "music" || req.Contexts[0].Lifespan != 2 {
		t.Errorf("contexts not normalized: %+v", req.Contexts)
	}
	if req.Contexts[0].Parameters["genre"] != "pop" {
		t.Errorf("context parameters not normalized: %+v", req.Contexts[0].Parameters)
	}
}

func TestDecode_V2(t *testing.T) {
	body := []byte(`{
		"queryResult": {
			"action": "input.welcome",
			"parameters": {},
			"outputContexts": [
				{"name": "projects/p/agent/sessions/s/contexts/greeting", "lifespanCount": 5}
			]
		},
		"originalDetectIntentRequest": {
			"source": "google",
			"payload": {
				"surface": {"capabilities": [{"name": "actions.capability.AUDIO_OUTPUT"}]}
			}
		}
	}`)

	req, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if req.Version != domain.SchemaV2 {
		t.Errorf("expected schema v2, got %s", req.Version)
	}
	if req.IntentKey != "input.welcome" {
		t.Errorf("unexpected intent key: %q", req.IntentKey)
	}
	if len(req.Contexts) != 1 || req.Contexts[0].Lifespan != 5 {
		t.Errorf("lifespanCount not mapped: %+v", req.Contexts)
	}
	if req.HasCapability(domain.CapabilityScreenOutput) {
		t.Error("screen capability should be absent")
	}
}

func TestDecode_V2IntentDisplayNameFallback(t *testing.T) {
	body := []byte(`{
		"queryResult": {
			"intent": {"name": "projects/p/agent/intents/x", "displayName": "input.unknown"}
		}
	}`)

	req, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if req.IntentKey != "input.unknown" {
		t.Errorf("expected displayName fallback, got %q", req.IntentKey)
	}
}

func TestDecode_UnrecognizedSchema(t *testing.T) {
	for _, body := range []string{`{}`, `{"foo": 1}`, `not json`} {
		_, err := Decode([]byte(body))
		if !errors.Is(err, domain.ErrUnrecognizedSchema) {
			t.Errorf("body %q: expected ErrUnrecognizedSchema, got %v", body, err)
		}
	}
}

func TestDecode_Arguments(t *testing.T) {
	body := []byte(`{
		"result": {"action": "actions.intent.MEDIA_STATUS"},
		"originalRequest": {
			"source": "google",
			"data": {
				"inputs": [{
					"intent": "actions.intent.MEDIA_STATUS",
					"arguments": [
						{"name": "MEDIA_STATUS", "extension": {"status": "FINISHED"}},
						{"name": "NEW_SURFACE", "extension": {"status": "OK"}},
						{"name": "REGISTER_UPDATE", "extension": {"status": "OK"}},
						{"name": "PERMISSION", "boolValue": true}
					]
				}]
			}
		}
	}`)

	req, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if req.MediaStatus != "FINISHED" {
		t.Errorf("media status not extracted: %q", req.MediaStatus)
	}
	if !req.NewSurfaceAccepted {
		t.Error("expected new surface accepted")
	}
	if !req.UpdateRegistered {
		t.Error("expected update registered")
	}
	if !req.PermissionGranted {
		t.Error("expected permission granted")
	}
}
