package jobs

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"

	"github.com/stockroom/stockroom/internal/platform/httpx"
)

// Handler exposes queue observability and an on-demand digest trigger.
type Handler struct {
	inspector *asynq.Inspector
	client    *Client
	logger    *slog.Logger
}

func NewHandler(inspector *asynq.Inspector, client *Client, logger *slog.Logger) *Handler {
	return &Handler{inspector: inspector, client: client, logger: logger}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/health", h.health)
	r.Post("/digest", h.triggerDigest)
}

type queueHealth struct {
	Queue   string `json:"queue"`
	Pending int    `json:"pending"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if h.inspector == nil {
		httpx.OK(w, queueHealth{Queue: QueueDefault})
		return
	}
	info, err := h.inspector.GetQueueInfo(QueueDefault)
	if err != nil {
		h.logger.Warn("jobs health", slog.Any("error", err))
		httpx.Fail(w, http.StatusServiceUnavailable, "queue unavailable")
		return
	}
	httpx.OK(w, queueHealth{Queue: info.Queue, Pending: info.Pending})
}

func (h *Handler) triggerDigest(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		httpx.Fail(w, http.StatusServiceUnavailable, "queue unavailable")
		return
	}
	var payload LowStockDigestPayload
	if r.ContentLength > 0 {
		if err := httpx.DecodeJSON(r, &payload); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	info, err := h.client.EnqueueLowStockDigest(r.Context(), payload)
	if err != nil {
		h.logger.Error("enqueue digest", slog.Any("error", err))
		httpx.Fail(w, http.StatusServiceUnavailable, "queue unavailable")
		return
	}
	httpx.JSON(w, http.StatusAccepted, httpx.Envelope{Success: true, Data: map[string]string{"taskId": info.ID}})
}
