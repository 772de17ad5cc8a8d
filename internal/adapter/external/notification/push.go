// Package notification is the out-of-band push side channel. It runs
// detached from the fulfillment response path; every failure here is
// logged and swallowed, never surfaced to the user.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// DefaultEndpoint is the assistant push delivery API.
const DefaultEndpoint = "https://actions.googleapis.com/v2/conversations:send"

// Config holds the fixed delivery parameters for the side channel.
type Config struct {
	Endpoint        string
	RecipientUserID string
	Sandbox         bool
	Timeout         time.Duration
}

// PushNotifier implements ports.Notifier against the assistant push API,
// behind a circuit breaker so a flapping endpoint stops being hammered.
type PushNotifier struct {
	cfg        Config
	tokens     *TokenSource
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	log        *zap.Logger
}

type pushRequest struct {
	CustomPushMessage customPushMessage `json:"customPushMessage"`
	IsInSandbox       bool              `json:"isInSandbox"`
}

type customPushMessage struct {
	UserNotification userNotification `json:"userNotification"`
	Target           pushTarget       `json:"target"`
}

type userNotification struct {
	Title string `json:"title"`
}

type pushTarget struct {
	UserID string `json:"userId"`
	Intent string `json:"intent"`
}

// NewPushNotifier builds the notifier. An empty endpoint falls back to
// DefaultEndpoint; an empty timeout to 10s.
func NewPushNotifier(cfg Config, tokens *TokenSource, log *zap.Logger) *PushNotifier {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "push-notifier",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Push notifier circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &PushNotifier{
		cfg:        cfg,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    cb,
		log:        log,
	}
}

// SendPush authorizes and posts a push notification carrying the title to
// the configured recipient, tagged with the intent to trigger. The call
// carries its own bounded timeout so a hung endpoint never holds a
// goroutine indefinitely.
func (n *PushNotifier) SendPush(ctx context.Context, title, intent string) error {
	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()

	_, err := n.breaker.Execute(func() (interface{}, error) {
		return nil, n.send(ctx, title, intent)
	})
	if err != nil {
		n.log.Error("Push notification failed",
			zap.String("title", title),
			zap.String("intent", intent),
			zap.Error(err),
		)
		return err
	}

	n.log.Info("Push notification sent",
		zap.String("title", title),
		zap.String("intent", intent),
	)
	return nil
}

func (n *PushNotifier) send(ctx context.Context, title, intent string) error {
	token, err := n.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("push: authorize: %w", err)
	}

	payload, err := json.Marshal(pushRequest{
		CustomPushMessage: customPushMessage{
			UserNotification: userNotification{Title: title},
			Target: pushTarget{
				UserID: n.cfg.RecipientUserID,
				Intent: intent,
			},
		},
		IsInSandbox: n.cfg.Sandbox,
	})
	if err != nil {
		return fmt.Errorf("push: marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("push: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("push: delivery failed with status %d", resp.StatusCode)
	}
	return nil
}
