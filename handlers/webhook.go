package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"vowflow/services/workflow"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

// PaymentWebhookHandler receives gateway event notifications.
type PaymentWebhookHandler struct {
	Svc    workflow.Service
	Logger *zap.Logger
}

func NewPaymentWebhookHandler(svc workflow.Service, logger *zap.Logger) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{Svc: svc, Logger: logger}
}

// Handle dispatches payment_intent events into the engine. The gateway cannot
// act on our errors, so handled events always return 200; processing failures
// are logged and resolved by reconciliation.
func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	var event stripe.Event
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event"})
		return
	}

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payment intent"})
			return
		}
		if intent.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing intent id"})
			return
		}

		ctx := c.Request.Context()
		if event.Type == "payment_intent.succeeded" {
			err = h.Svc.OnPaymentSucceeded(ctx, intent.ID)
		} else {
			reason := ""
			if intent.LastPaymentError != nil {
				reason = intent.LastPaymentError.Msg
			}
			err = h.Svc.OnPaymentFailed(ctx, intent.ID, reason)
		}
		if err != nil {
			h.Logger.Error("payment event processing failed",
				zap.String("eventType", string(event.Type)),
				zap.String("intentID", intent.ID),
				zap.Error(err))
		}
	default:
		h.Logger.Debug("ignoring payment event", zap.String("eventType", string(event.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
