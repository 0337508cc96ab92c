package notification

import (
	"context"

	"vowflow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogDispatcher records deliveries instead of sending them. Used when no
// push credentials are configured (local development).
type LogDispatcher struct{}

func (d *LogDispatcher) Send(ctx context.Context, channel, recipientID, template string, data map[string]string) (string, error) {
	title, body := Render(template, data)
	utils.GetLogger().Info("Notification (log only)",
		zap.String("channel", channel),
		zap.String("recipient", recipientID),
		zap.String("template", template),
		zap.String("title", title),
		zap.String("body", body))
	return uuid.New().String(), nil
}
