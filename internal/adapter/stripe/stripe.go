// Package stripe adapts the Stripe API for subscription billing.
//
// The application never trusts its own view of billing state: all
// subscription writes originate from verified webhook events, which
// this package normalizes into SubscriptionEvent values.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/wordnest/wordnest-backend/internal/config"
	"github.com/wordnest/wordnest-backend/internal/domain"
)

// Adapter wraps a configured Stripe API client.
type Adapter struct {
	api *client.API
	cfg config.BillingConfig
}

// New creates a Stripe adapter from billing config.
func New(cfg config.BillingConfig) *Adapter {
	api := &client.API{}
	api.Init(cfg.StripeSecretKey, nil)
	return &Adapter{api: api, cfg: cfg}
}

// CreateCheckoutSession starts a subscription checkout for the user and
// returns the hosted payment page URL. The user id travels as the
// session's client reference and as subscription metadata so webhooks
// can map events back to a local account.
func (a *Adapter) CreateCheckoutSession(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Params:            stripe.Params{Context: ctx},
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail:     stripe.String(email),
		ClientReferenceID: stripe.String(userID.String()),
		SuccessURL:        stripe.String(a.cfg.CheckoutSuccess),
		CancelURL:         stripe.String(a.cfg.CheckoutCancel),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(a.cfg.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{"user_id": userID.String()},
		},
	}

	session, err := a.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return session.URL, nil
}

// SubscriptionEvent is a verified webhook event normalized to local
// billing terms. UserID is uuid.Nil when the event carried no usable
// user reference; the handler then resolves it by customer id.
type SubscriptionEvent struct {
	Type              string
	UserID            uuid.UUID
	CustomerID        string
	SubscriptionID    string
	Status            domain.SubscriptionStatus
	CurrentPeriodEnd  time.Time
	CancelAtPeriodEnd bool
}

// ParseWebhook verifies the event signature and extracts subscription
// state. Event types that do not affect subscription state return a
// SubscriptionEvent with only Type set.
func (a *Adapter) ParseWebhook(payload []byte, signature string) (*SubscriptionEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, a.cfg.WebhookSecret)
	if err != nil {
		return nil, fmt.Errorf("verify webhook signature: %w", err)
	}

	switch event.Type {
	case "customer.subscription.created",
		"customer.subscription.updated",
		"customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("decode subscription event: %w", err)
		}
		return subscriptionEvent(string(event.Type), &sub), nil
	default:
		return &SubscriptionEvent{Type: string(event.Type)}, nil
	}
}

func subscriptionEvent(eventType string, sub *stripe.Subscription) *SubscriptionEvent {
	ev := &SubscriptionEvent{
		Type:              eventType,
		SubscriptionID:    sub.ID,
		Status:            mapStatus(sub.Status),
		CurrentPeriodEnd:  time.Unix(sub.CurrentPeriodEnd, 0),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}
	if sub.Customer != nil {
		ev.CustomerID = sub.Customer.ID
	}
	if raw, ok := sub.Metadata["user_id"]; ok {
		if id, err := uuid.Parse(raw); err == nil {
			ev.UserID = id
		}
	}
	return ev
}

func mapStatus(status stripe.SubscriptionStatus) domain.SubscriptionStatus {
	switch status {
	case stripe.SubscriptionStatusActive:
		return domain.SubscriptionStatusActive
	case stripe.SubscriptionStatusTrialing:
		return domain.SubscriptionStatusTrialing
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusIncomplete, stripe.SubscriptionStatusUnpaid:
		return domain.SubscriptionStatusPastDue
	default:
		return domain.SubscriptionStatusCanceled
	}
}
