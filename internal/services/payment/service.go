// Package payment collects intake fees through Stripe Checkout. A session
// produces a hosted pay-link the applicant opens on their own device; the
// status is polled on demand rather than pushed, since branch deployments
// sit behind NAT with no webhook reachability.
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"origo/internal/config"
	"origo/internal/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/checkout/session"
)

// Service errors
var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidFeeType = errors.New("invalid fee type")
	ErrGatewayFailure = errors.New("payment gateway failure")
)

var feeLabels = map[string]string{
	models.FeeTypeProcessing: "Loan processing fee",
	models.FeeTypeLogin:      "Loan login fee",
}

type Service interface {
	CreateSession(ctx context.Context, lead *models.Lead, feeType string, amount float64, remarks string) (*models.PaymentSession, error)
	PollStatus(ctx context.Context, ps *models.PaymentSession) (models.PaymentStatus, *time.Time, error)
}

type service struct {
	successURL string
	cancelURL  string
	now        func() time.Time
}

// NewService creates the Stripe-backed payment service and installs the
// API key from configuration.
func NewService() Service {
	stripe.Key = config.StripeKey()
	base := config.GetEnv("PUBLIC_BASE_URL", "http://localhost:3000")
	return &service{
		successURL: base + "/payments/success",
		cancelURL:  base + "/payments/cancelled",
		now:        time.Now,
	}
}

func (s *service) CreateSession(ctx context.Context, lead *models.Lead, feeType string, amount float64, remarks string) (*models.PaymentSession, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	label, ok := feeLabels[feeType]
	if !ok {
		return nil, ErrInvalidFeeType
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String("inr"),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(label),
				},
				// Stripe amounts are in the smallest currency unit.
				UnitAmount: stripe.Int64(int64(amount * 100)),
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL:        stripe.String(s.successURL),
		CancelURL:         stripe.String(s.cancelURL),
		ClientReferenceID: stripe.String(lead.ID),
	}
	params.Context = ctx
	if lead.AppID != "" {
		params.AddMetadata("application_id", lead.AppID)
	}
	params.AddMetadata("fee_type", feeType)

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayFailure, err)
	}

	ps := &models.PaymentSession{
		ID:         uuid.NewString(),
		FeeType:    feeType,
		Amount:     amount,
		Remarks:    remarks,
		Status:     models.PaymentPending,
		PayLink:    sess.URL,
		GatewayRef: sess.ID,
		Timeline: models.PaymentTimeline{
			CreatedAt: s.now(),
		},
	}
	return ps, nil
}

// PollStatus queries the gateway for the session's current state. The
// returned time is the moment payment was observed received, nil unless
// the status is Paid.
func (s *service) PollStatus(ctx context.Context, ps *models.PaymentSession) (models.PaymentStatus, *time.Time, error) {
	if ps.GatewayRef == "" {
		return ps.Status, nil, nil
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := session.Get(ps.GatewayRef, params)
	if err != nil {
		return ps.Status, nil, fmt.Errorf("%w: %v", ErrGatewayFailure, err)
	}

	switch {
	case sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid:
		received := s.now()
		return models.PaymentPaid, &received, nil
	case sess.Status == stripe.CheckoutSessionStatusExpired:
		return models.PaymentFailed, nil, nil
	default:
		return models.PaymentPending, nil, nil
	}
}
