package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/wordnest/wordnest-backend/internal/service/billing"
)

// webhookBodyLimit caps webhook payload reads. Stripe events are small.
const webhookBodyLimit = 1 << 16

// billingService defines the minimal interface needed by BillingHandler.
type billingService interface {
	CreateCheckout(ctx context.Context) (string, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	Status(ctx context.Context) (*billing.StatusOutput, error)
}

// BillingHandler serves billing REST endpoints.
type BillingHandler struct {
	svc billingService
	log *slog.Logger
}

// NewBillingHandler creates a BillingHandler.
func NewBillingHandler(svc billingService, logger *slog.Logger) *BillingHandler {
	return &BillingHandler{svc: svc, log: logger.With("handler", "billing")}
}

type checkoutResponse struct {
	URL string `json:"url"`
}

type statusResponse struct {
	Premium           bool       `json:"premium"`
	Status            string     `json:"status,omitempty"`
	CurrentPeriodEnd  *time.Time `json:"currentPeriodEnd,omitempty"`
	CancelAtPeriodEnd bool       `json:"cancelAtPeriodEnd"`
}

// Checkout handles POST /billing/checkout.
func (h *BillingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	url, err := h.svc.CreateCheckout(r.Context())
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{URL: url})
}

// Webhook handles POST /billing/webhook. Unauthenticated; the payload
// is trusted only after its signature verifies.
func (h *BillingHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, webhookBodyLimit))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	if err := h.svc.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		h.log.WarnContext(r.Context(), "webhook rejected", slog.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, "webhook rejected")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Status handles GET /billing/status.
func (h *BillingHandler) Status(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Status(r.Context())
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	resp := statusResponse{
		Premium:           out.Premium,
		CancelAtPeriodEnd: out.CancelAtPeriodEnd,
	}
	if out.Status != "" {
		resp.Status = out.Status.String()
		end := out.CurrentPeriodEnd
		resp.CurrentPeriodEnd = &end
	}
	writeJSON(w, http.StatusOK, resp)
}
