package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
	"go.uber.org/zap"

	"vowflow/utils"
)

// StripeGateway implements Gateway against Stripe. The API key is set
// globally at startup (stripe.Key).
type StripeGateway struct{}

// NewStripeGateway returns a Stripe-backed Gateway.
func NewStripeGateway() *StripeGateway {
	return &StripeGateway{}
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(toMinorUnits(amount)),
		Currency: stripe.String(currency),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: create payment intent failed: %w", err)
	}

	utils.GetLogger().Info("Created payment intent",
		zap.String("intentID", pi.ID),
		zap.Float64("amount", amount),
		zap.String("currency", currency))
	return pi.ID, nil
}

func (g *StripeGateway) CreateRefund(ctx context.Context, intentID string, amount float64) (string, error) {
	params := &stripe.RefundParams{
		Params:        stripe.Params{Context: ctx},
		PaymentIntent: stripe.String(intentID),
	}
	// At most one refund is ever issued per intent, so a keyed retry after
	// a rolled-back cancellation dedupes at the gateway instead of
	// refunding twice.
	params.SetIdempotencyKey(refundIdempotencyKey(intentID))
	if amount > 0 {
		params.Amount = stripe.Int64(toMinorUnits(amount))
	}

	rf, err := refund.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: create refund failed: %w", err)
	}

	utils.GetLogger().Info("Created refund",
		zap.String("refundID", rf.ID),
		zap.String("intentID", intentID),
		zap.Float64("amount", amount))
	return rf.ID, nil
}

// toMinorUnits converts a major-unit amount to the gateway's integer minor
// units (e.g. dollars to cents).
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// refundIdempotencyKey derives a stable per-intent key, so re-issuing the
// same refund is a no-op on the gateway side.
func refundIdempotencyKey(intentID string) string {
	return "refund-" + intentID
}
