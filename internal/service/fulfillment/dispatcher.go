// Package fulfillment routes normalized webhook requests to intent
// handlers and produces the outbound response union.
package fulfillment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/songcast/internal/domain"
	"github.com/seu-repo/songcast/internal/observability/telemetry"
	"github.com/seu-repo/songcast/internal/ports"
	"github.com/seu-repo/songcast/internal/service/response"
)

// ErrMissingIntentKey means a request passed schema detection but carries
// no intent key. The adapter always sets one for well-formed payloads, so
// this is a logic defect and is not degraded to the fallback handler.
var ErrMissingIntentKey = errors.New("decoded request has no intent key")

const (
	defaultKey = "default"

	// PushIntent tags outbound notifications so the platform routes the
	// tap-through back into the play flow.
	PushIntent = "play_song"

	updateFrequencyDaily = "DAILY"
)

// Detached is a side effect a handler wants to run off the response path.
// The transport launches it in its own goroutine with a bounded timeout;
// its outcome never changes the response already returned.
type Detached func(ctx context.Context)

// HandlerFunc handles one intent. The returned Detached is nil when the
// handler has no out-of-band work.
type HandlerFunc func(ctx context.Context, req *domain.InboundRequest) (*domain.Response, Detached, error)

// Dispatcher owns the intent handler table. The table is built once at
// construction and never mutated, so a single Dispatcher is safe for
// concurrent requests.
type Dispatcher struct {
	catalog  ports.SongCatalog
	notifier ports.Notifier
	handlers map[string]HandlerFunc
	logger   *zap.Logger
}

func NewDispatcher(catalog ports.SongCatalog, notifier ports.Notifier, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		catalog:  catalog,
		notifier: notifier,
		logger:   logger,
	}
	d.handlers = map[string]HandlerFunc{
		"input.welcome":               d.handleWelcome,
		"input.share_song":            d.handleShareSong,
		"input.unknown":               d.handleUnknown,
		"input.check_surface":         d.handleCheckSurface,
		"input.new_surface_response":  d.handleNewSurfaceResponse,
		"input.play_song":             d.handlePlaySong,
		"actions.intent.MEDIA_STATUS": d.handleMediaStatus,
		"finish_register_update":      d.handleFinishRegisterUpdate,
		"finish_push_permission":      d.handleFinishPushPermission,
		defaultKey:                    d.handleDefault,
	}
	return d
}

// Dispatch routes the request to its handler. Unknown intent keys resolve
// to the default handler and never error; a handler failure also degrades
// to the default response so the user always gets a conversational reply.
func (d *Dispatcher) Dispatch(ctx context.Context, req *domain.InboundRequest) (*domain.Response, Detached, error) {
	if req.IntentKey == "" {
		return nil, nil, ErrMissingIntentKey
	}

	start := time.Now()
	key := req.IntentKey
	handler, ok := d.handlers[key]
	if !ok {
		d.logger.Debug("unknown intent key, using default handler",
			zap.String("intent", key))
		key = defaultKey
		handler = d.handlers[defaultKey]
	}

	resp, detached, err := handler(ctx, req)
	status := "ok"
	if err != nil {
		status = "degraded"
		d.logger.Error("intent handler failed, degrading to default response",
			zap.String("intent", key),
			zap.Error(err))
		resp, detached, err = d.handleDefault(ctx, req)
		if err != nil {
			return nil, nil, err
		}
	}

	telemetry.DispatchLatency.Observe(time.Since(start).Seconds())
	telemetry.FulfillmentRequestsTotal.WithLabelValues(key, status).Inc()

	return resp, detached, nil
}

func (d *Dispatcher) handleWelcome(ctx context.Context, req *domain.InboundRequest) (*domain.Response, Detached, error) {
	resp, err := response.Simple("Hello, welcome to Songcast! Ask me to play or share a song.")
	return resp, nil, err
}

// handleShareSong acknowledges the share and returns a detached task that
// pushes a notification carrying the resolved song title. The push runs
// off the response path: its failure is logged by the notifier and never
// reaches the user.
func (d *Dispatcher) handleShareSong(ctx context.Context, req *domain.InboundRequest) (*domain.Response, Detached, error) {
	song := d.catalog.Lookup(ctx, req.Parameter("song-name"))

	resp, err := response.Rich(response.RichOptions{
		Speech:      "Ok, I'll share " + song.Title + " with them.",
		DisplayText: "Sharing " + song.Title + " by " + song.Author + ".",
	})
	if err != nil {
		return nil, nil, err
	}

	notifier := d.notifier
	title := song.Title
	detached := func(ctx context.Context) {
		if err := notifier.SendPush(ctx, title, PushIntent); err != nil {
			telemetry.PushNotificationsTotal.WithLabelValues("error").Inc()
			return
		}
		telemetry.PushNotificationsTotal.WithLabelValues("ok").Inc()
	}
	return resp, detached, nil
}

func (d *Dispatcher) handleUnknown(ctx context.Context, req *domain.InboundRequest) (*domain.Response, Detached, error) {
	resp, err := response.Simple("I'm having trouble, can you try that again?")
	return resp, nil, err
}

// handleCheckSurface subscribes the user to daily song updates. On a
// screen device it registers the update directly; on a voice-only device
// it hands the conversation to a screen surface when one is available.
func (d *Dispatcher) handleCheckSurface(ctx context.Context, req *domain.InboundRequest) (*domain.Response, Detached, error) {
	if req.HasCapability(domain.CapabilityScreenOutput) {
		resp := response.Directive(domain.Directive{
			Kind:         domain.DirectiveRegisterUpdate,
			UpdateIntent: PushIntent,
			Frequency:    updateFrequencyDaily,
		}, "")
		return resp, nil, nil
	}

	if req.HasAvailableCapability(domain.CapabilityScreenOutput) {
		resp := response.Directive(domain.Directive{
			Kind:              domain.DirectiveNewSurface,
			Context:           "Sure, I can send you updates.",
			NotificationTitle: "Your daily song updates",
			Capabilities:      []domain.Capability{domain.CapabilityScreenOutput},
		}, "")
		return resp, nil, nil
	}

	resp, err := response.Rich(response.RichOptions{
		Speech:          "Sorry, you need a screen to see song updates.",
		EndConversation: true,
	})
	return resp, nil, err
}

func (d *Dispatcher) handleNewSurfaceResponse(ctx context.Context, req *domain.InboundRequest) (*domain.Response, Detached, error) {
	text := "Ok, I understand. You don't want to switch devices. Bye."
	if req.NewSurfaceAccepted {
		text = "Thanks for accepting."
	}
	resp, err := response.Rich(response.RichOptions{
		Speech:          text,
		EndConversation: true,
	})
	return resp, nil, err
}

// handlePlaySong resolves the requested song (default on a miss) and
// keeps the conversation open after playback so the follow-on suggestion
// chips stay reachable.
func (d *Dispatcher) handlePlaySong(ctx context.Context, req *domain.InboundRequest) (*domain.Response, Detached, error) {
	song := d.catalog.Lookup(ctx, req.Parameter("song-name"))
	return response.Media(song, true, ""), nil, nil
}

// handleMediaStatus runs when a track finishes and queues up the default
// song so playback keeps going.
func (d *Dispatcher) handleMediaStatus(ctx context.Context, req *domain.InboundRequest) (*domain.Response, Detached, error) {
	song := d.catalog.Default(ctx)
	return response.Media(song, true, ""), nil, nil
}

func (d *Dispatcher) handleFinishRegisterUpdate(ctx context.Context, req *domain.InboundRequest) (*domain.Response, Detached, error) {
	text := "Ok, I won't give you song updates."
	if req.UpdateRegistered {
		text = "Ok, I'll start sending you song updates."
	}
	resp, err := response.Rich(response.RichOptions{
		Speech:          text,
		EndConversation: true,
	})
	return resp, nil, err
}

func (d *Dispatcher) handleFinishPushPermission(ctx context.Context, req *domain.InboundRequest) (*domain.Response, Detached, error) {
	text := "No problem, I won't send you notifications."
	if req.PermissionGranted {
		text = "Great, I'll notify you when a song is shared."
	}
	resp, err := response.Rich(response.RichOptions{
		Speech:          text,
		EndConversation: true,
	})
	return resp, nil, err
}

func (d *Dispatcher) handleDefault(ctx context.Context, req *domain.InboundRequest) (*domain.Response, Detached, error) {
	resp, err := response.Rich(response.RichOptions{
		Speech:      "I didn't catch that. You can ask me to play a song or share one.",
		DisplayText: "Try: play a song, share a song, or send me daily updates.",
	})
	return resp, nil, err
}
