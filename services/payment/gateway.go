package payment

import "context"

// Gateway is the consumed payment-gateway contract. Success and failure of
// intents arrive later through the asynchronous callback channel; CreateRefund
// compensates an already-captured intent.
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (string, error)
	CreateRefund(ctx context.Context, intentID string, amount float64) (string, error)
}
