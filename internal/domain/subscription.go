package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus mirrors the payment provider's subscription lifecycle.
type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "ACTIVE"
	SubscriptionStatusTrialing SubscriptionStatus = "TRIALING"
	SubscriptionStatusPastDue  SubscriptionStatus = "PAST_DUE"
	SubscriptionStatusCanceled SubscriptionStatus = "CANCELED"
)

func (s SubscriptionStatus) String() string { return string(s) }

// Subscription is the locally mirrored billing state for a user.
// It is written only from payment-provider webhooks; the application never
// invents subscription state on its own.
type Subscription struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	CustomerID        string // payment-provider customer id
	SubscriptionID    string // payment-provider subscription id
	Status            SubscriptionStatus
	CurrentPeriodEnd  time.Time
	CancelAtPeriodEnd bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsActive reports whether the subscription grants paid features at now.
// Trialing counts as active; a canceled-at-period-end subscription stays
// active until the period actually ends.
func (s *Subscription) IsActive(now time.Time) bool {
	switch s.Status {
	case SubscriptionStatusActive, SubscriptionStatusTrialing:
		return now.Before(s.CurrentPeriodEnd)
	}
	return false
}

// UsageEvent records one metered action (a quiz generation) for quota
// accounting. Append-only.
type UsageEvent struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Kind       string // "quiz_generation"
	OccurredAt time.Time
}

// UsageKindQuizGeneration is the only metered event kind today.
const UsageKindQuizGeneration = "quiz_generation"
