package billing

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/adapter/stripe"
	"github.com/wordnest/wordnest-backend/internal/domain"
	"github.com/wordnest/wordnest-backend/pkg/ctxutil"
)

type checkoutProviderMock struct {
	CreateCheckoutSessionFunc func(ctx context.Context, userID uuid.UUID, email string) (string, error)
	ParseWebhookFunc          func(payload []byte, signature string) (*stripe.SubscriptionEvent, error)
}

func (m *checkoutProviderMock) CreateCheckoutSession(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	return m.CreateCheckoutSessionFunc(ctx, userID, email)
}

func (m *checkoutProviderMock) ParseWebhook(payload []byte, signature string) (*stripe.SubscriptionEvent, error) {
	return m.ParseWebhookFunc(payload, signature)
}

type subscriptionRepoMock struct {
	GetByUserIDFunc     func(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error)
	GetByCustomerIDFunc func(ctx context.Context, customerID string) (*domain.Subscription, error)
	UpsertFunc          func(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error)
}

func (m *subscriptionRepoMock) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	return m.GetByUserIDFunc(ctx, userID)
}

func (m *subscriptionRepoMock) GetByCustomerID(ctx context.Context, customerID string) (*domain.Subscription, error) {
	return m.GetByCustomerIDFunc(ctx, customerID)
}

func (m *subscriptionRepoMock) Upsert(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	return m.UpsertFunc(ctx, sub)
}

type userRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newBillingService(provider *checkoutProviderMock, subs *subscriptionRepoMock, users *userRepoMock) *Service {
	s := NewService(slog.New(slog.DiscardHandler), provider, subs, users)
	s.now = func() time.Time { return testNow }
	return s
}

func userCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

func TestService_CreateCheckout(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	provider := &checkoutProviderMock{
		CreateCheckoutSessionFunc: func(ctx context.Context, id uuid.UUID, email string) (string, error) {
			if id != userID {
				t.Errorf("checkout for wrong user %v", id)
			}
			if email != "payer@example.com" {
				t.Errorf("unexpected email %q", email)
			}
			return "https://checkout.example/s/abc", nil
		},
	}
	users := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, Email: "payer@example.com"}, nil
		},
	}

	s := newBillingService(provider, &subscriptionRepoMock{}, users)

	url, err := s.CreateCheckout(userCtx(userID))
	if err != nil {
		t.Fatalf("CreateCheckout() error = %v", err)
	}
	if url != "https://checkout.example/s/abc" {
		t.Errorf("unexpected checkout URL %q", url)
	}
}

func TestService_CreateCheckout_NoUserID(t *testing.T) {
	t.Parallel()

	s := newBillingService(&checkoutProviderMock{}, &subscriptionRepoMock{}, &userRepoMock{})

	_, err := s.CreateCheckout(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestService_HandleWebhook(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("metadata user id", func(t *testing.T) {
		t.Parallel()

		var upserted *domain.Subscription
		subs := &subscriptionRepoMock{
			UpsertFunc: func(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
				upserted = sub
				return sub, nil
			},
		}
		provider := &checkoutProviderMock{
			ParseWebhookFunc: func(payload []byte, signature string) (*stripe.SubscriptionEvent, error) {
				return &stripe.SubscriptionEvent{
					Type:             "customer.subscription.created",
					UserID:           userID,
					CustomerID:       "cus_123",
					SubscriptionID:   "sub_123",
					Status:           domain.SubscriptionStatusActive,
					CurrentPeriodEnd: testNow.Add(30 * 24 * time.Hour),
				}, nil
			},
		}

		s := newBillingService(provider, subs, &userRepoMock{})

		if err := s.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
			t.Fatalf("HandleWebhook() error = %v", err)
		}
		if upserted == nil {
			t.Fatal("expected subscription upsert")
		}
		if upserted.UserID != userID || upserted.Status != domain.SubscriptionStatusActive {
			t.Errorf("upserted wrong state: %+v", upserted)
		}
	})

	t.Run("resolves user by customer id", func(t *testing.T) {
		t.Parallel()

		var upserted *domain.Subscription
		subs := &subscriptionRepoMock{
			GetByCustomerIDFunc: func(ctx context.Context, customerID string) (*domain.Subscription, error) {
				if customerID != "cus_456" {
					t.Errorf("looked up wrong customer %q", customerID)
				}
				return &domain.Subscription{UserID: userID, CustomerID: customerID}, nil
			},
			UpsertFunc: func(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
				upserted = sub
				return sub, nil
			},
		}
		provider := &checkoutProviderMock{
			ParseWebhookFunc: func(payload []byte, signature string) (*stripe.SubscriptionEvent, error) {
				return &stripe.SubscriptionEvent{
					Type:           "customer.subscription.updated",
					CustomerID:     "cus_456",
					SubscriptionID: "sub_456",
					Status:         domain.SubscriptionStatusCanceled,
				}, nil
			},
		}

		s := newBillingService(provider, subs, &userRepoMock{})

		if err := s.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
			t.Fatalf("HandleWebhook() error = %v", err)
		}
		if upserted == nil || upserted.UserID != userID {
			t.Fatalf("expected upsert for resolved user, got %+v", upserted)
		}
	})

	t.Run("unknown customer dropped", func(t *testing.T) {
		t.Parallel()

		subs := &subscriptionRepoMock{
			GetByCustomerIDFunc: func(ctx context.Context, customerID string) (*domain.Subscription, error) {
				return nil, domain.ErrNotFound
			},
			UpsertFunc: func(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
				t.Error("must not upsert for an unmappable customer")
				return sub, nil
			},
		}
		provider := &checkoutProviderMock{
			ParseWebhookFunc: func(payload []byte, signature string) (*stripe.SubscriptionEvent, error) {
				return &stripe.SubscriptionEvent{
					Type:           "customer.subscription.updated",
					CustomerID:     "cus_ghost",
					SubscriptionID: "sub_ghost",
				}, nil
			},
		}

		s := newBillingService(provider, subs, &userRepoMock{})

		if err := s.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
			t.Fatalf("unmappable events must be acknowledged, got %v", err)
		}
	})

	t.Run("irrelevant event ignored", func(t *testing.T) {
		t.Parallel()

		subs := &subscriptionRepoMock{
			UpsertFunc: func(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
				t.Error("must not write on irrelevant events")
				return sub, nil
			},
		}
		provider := &checkoutProviderMock{
			ParseWebhookFunc: func(payload []byte, signature string) (*stripe.SubscriptionEvent, error) {
				return &stripe.SubscriptionEvent{Type: "invoice.paid"}, nil
			},
		}

		s := newBillingService(provider, subs, &userRepoMock{})

		if err := s.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
			t.Fatalf("HandleWebhook() error = %v", err)
		}
	})

	t.Run("bad signature", func(t *testing.T) {
		t.Parallel()

		provider := &checkoutProviderMock{
			ParseWebhookFunc: func(payload []byte, signature string) (*stripe.SubscriptionEvent, error) {
				return nil, errors.New("signature mismatch")
			},
		}

		s := newBillingService(provider, &subscriptionRepoMock{}, &userRepoMock{})

		if err := s.HandleWebhook(context.Background(), []byte("{}"), "bad"); err == nil {
			t.Error("expected error for an unverifiable event")
		}
	})
}

func TestService_Status(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name    string
		sub     *domain.Subscription
		subErr  error
		premium bool
	}{
		{
			name:    "no subscription is free tier",
			subErr:  domain.ErrNotFound,
			premium: false,
		},
		{
			name: "active subscription",
			sub: &domain.Subscription{
				Status:           domain.SubscriptionStatusActive,
				CurrentPeriodEnd: testNow.Add(24 * time.Hour),
			},
			premium: true,
		},
		{
			name: "lapsed period",
			sub: &domain.Subscription{
				Status:           domain.SubscriptionStatusActive,
				CurrentPeriodEnd: testNow.Add(-time.Hour),
			},
			premium: false,
		},
		{
			name: "canceled",
			sub: &domain.Subscription{
				Status:           domain.SubscriptionStatusCanceled,
				CurrentPeriodEnd: testNow.Add(24 * time.Hour),
			},
			premium: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			subs := &subscriptionRepoMock{
				GetByUserIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
					if tt.subErr != nil {
						return nil, tt.subErr
					}
					return tt.sub, nil
				},
			}

			s := newBillingService(&checkoutProviderMock{}, subs, &userRepoMock{})

			out, err := s.Status(userCtx(userID))
			if err != nil {
				t.Fatalf("Status() error = %v", err)
			}
			if out.Premium != tt.premium {
				t.Errorf("Premium = %v, want %v", out.Premium, tt.premium)
			}
		})
	}
}
