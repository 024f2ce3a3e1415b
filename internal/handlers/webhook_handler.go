package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Werneck0live/job-portal/internal/telemetry"
	"github.com/Werneck0live/job-portal/internal/utils"
	"github.com/Werneck0live/job-portal/internal/webhook"
)

const maxWebhookBody = 1 << 20

type WebhookProcessor interface {
	Handle(ctx context.Context, payload []byte, headers http.Header) (string, error)
}

type WebhookHandler struct {
	Processor WebhookProcessor
	Log       *slog.Logger
}

// POST /webhooks
func (h *WebhookHandler) Identity(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		utils.BadRequest(w, "invalid webhook body")
		return
	}

	if _, err := h.Processor.Handle(r.Context(), payload, r.Header); err != nil {
		switch {
		case errors.Is(err, webhook.ErrMissingHeaders),
			errors.Is(err, webhook.ErrVerification),
			errors.Is(err, webhook.ErrInvalidPayload):
			utils.BadRequest(w, err.Error())
		default:
			telemetry.LogError(r.Context(), h.Log, "webhook_error", err)
			utils.Fail(w, http.StatusInternalServerError, "Error in webhook handler")
		}
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{})
}
