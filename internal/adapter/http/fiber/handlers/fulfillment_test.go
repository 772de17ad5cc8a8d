package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/songcast/internal/mocks"
	"github.com/seu-repo/songcast/internal/service/fulfillment"
)

func setupTestApp(notifier *mocks.MockNotifier) *fiber.App {
	dispatcher := fulfillment.NewDispatcher(mocks.NewMockSongCatalog(), notifier, zap.NewNop())
	handler := NewFulfillmentHandler(dispatcher, time.Second, zap.NewNop())

	app := fiber.New()
	app.Post("/fulfillment", handler.Handle)
	return app
}

func postWebhook(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/fulfillment", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	return resp
}

func TestFulfillment_V1PlaySong(t *testing.T) {
	app := setupTestApp(mocks.NewMockNotifier())

	body := `{
		"result": {"action": "input.play_song", "parameters": {}},
		"originalRequest": {"source": "google"}
	}`
	resp := postWebhook(t, app, body)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	data, ok := payload["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data envelope: %v", payload)
	}
	if _, ok := data["google"]; !ok {
		t.Error("media response must carry the google envelope")
	}
}

func TestFulfillment_V2Welcome(t *testing.T) {
	app := setupTestApp(mocks.NewMockNotifier())

	body := `{"queryResult": {"action": "input.welcome", "parameters": {}}}`
	resp := postWebhook(t, app, body)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if payload["speech"] == "" || payload["speech"] == nil {
		t.Error("welcome reply must carry speech")
	}
	if payload["speech"] != payload["displayText"] {
		t.Error("simple reply speaks and displays the same text")
	}
}

func TestFulfillment_UnrecognizedSchema(t *testing.T) {
	app := setupTestApp(mocks.NewMockNotifier())

	for _, body := range []string{`{}`, `{"foo": 1}`, `not json`} {
		resp := postWebhook(t, app, body)
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %q: expected status 400, got %d", body, resp.StatusCode)
		}
		if !strings.Contains(string(raw), "Invalid Webhook Request") {
			t.Errorf("body %q: unexpected error body %q", body, raw)
		}
	}
}

func TestFulfillment_ShareSongRunsDetachedPush(t *testing.T) {
	notifier := mocks.NewMockNotifier()
	pushed := make(chan string, 1)
	notifier.SendPushFunc = func(ctx context.Context, title, intent string) error {
		pushed <- title
		return nil
	}
	app := setupTestApp(notifier)

	body := `{
		"result": {"action": "input.share_song", "parameters": {"song-name": "one song"}},
		"originalRequest": {"source": "google"}
	}`
	resp := postWebhook(t, app, body)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	select {
	case title := <-pushed:
		if title != "one song" {
			t.Errorf("push title = %q, want the shared song", title)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("detached push never ran")
	}
}
