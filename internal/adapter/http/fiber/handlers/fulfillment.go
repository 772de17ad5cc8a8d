package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/songcast/internal/adapter/webhook"
	"github.com/seu-repo/songcast/internal/domain"
	"github.com/seu-repo/songcast/internal/observability/telemetry"
	"github.com/seu-repo/songcast/internal/service/fulfillment"
	"github.com/seu-repo/songcast/internal/service/response"
)

const invalidWebhookMessage = "Invalid Webhook Request (expecting v1 or v2 webhook request)"

type FulfillmentHandler struct {
	dispatcher *fulfillment.Dispatcher

	// detachedTimeout bounds the fire-and-forget notification task so a
	// hung push never holds a goroutine indefinitely.
	detachedTimeout time.Duration

	log *zap.Logger
}

func NewFulfillmentHandler(dispatcher *fulfillment.Dispatcher, detachedTimeout time.Duration, log *zap.Logger) *FulfillmentHandler {
	if detachedTimeout <= 0 {
		detachedTimeout = 10 * time.Second
	}
	return &FulfillmentHandler{
		dispatcher:      dispatcher,
		detachedTimeout: detachedTimeout,
		log:             log,
	}
}

// Handle processes one webhook call. Schema detection failure is the only
// non-conversational error path and answers 400 plain text; everything
// past decode produces a conversational payload.
func (h *FulfillmentHandler) Handle(c *fiber.Ctx) error {
	body := c.Body()
	h.log.Debug("webhook request", zap.ByteString("body", body))

	req, err := webhook.Decode(body)
	if err != nil {
		if errors.Is(err, domain.ErrUnrecognizedSchema) {
			h.log.Warn("unrecognized webhook schema", zap.Error(err))
			return c.Status(fiber.StatusBadRequest).SendString(invalidWebhookMessage)
		}
		return err
	}
	telemetry.SchemaRequestsTotal.WithLabelValues(req.Version.String()).Inc()

	resp, detached, err := h.dispatcher.Dispatch(c.Context(), req)
	if err != nil {
		h.log.Error("dispatch failed", zap.String("intent", req.IntentKey), zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "dispatch failed")
	}

	if detached != nil {
		go h.runDetached(detached)
	}

	payload := response.Render(resp, req.Source)
	h.log.Debug("webhook response",
		zap.String("intent", req.IntentKey),
		zap.String("kind", resp.Kind.String()))
	return c.JSON(payload)
}

// runDetached executes a handler side effect on its own context; the
// response has already been sent when this runs.
func (h *FulfillmentHandler) runDetached(task fulfillment.Detached) {
	ctx, cancel := context.WithTimeout(context.Background(), h.detachedTimeout)
	defer cancel()
	task(ctx)
}
