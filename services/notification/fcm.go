package notification

import (
	"context"
	"fmt"

	deviceRepo "vowflow/database/repository/device"
	"vowflow/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMDispatcher is the production Dispatcher: it resolves the recipient's
// device token and sends a push through Firebase Cloud Messaging. Email and
// SMS channels are handed off to external transports and only logged here.
type FCMDispatcher struct {
	Devices deviceRepo.DeviceRepository
}

func NewFCMDispatcher(devices deviceRepo.DeviceRepository) (*FCMDispatcher, error) {
	if devices == nil {
		return nil, fmt.Errorf("notification dispatcher initialization error: device repository is nil")
	}
	return &FCMDispatcher{Devices: devices}, nil
}

func (d *FCMDispatcher) Send(ctx context.Context, channel, recipientID, template string, data map[string]string) (string, error) {
	if channel != ChannelPush {
		// Non-push channels are relayed by the external transport layer.
		utils.GetLogger().Info("Relayed non-push notification",
			zap.String("channel", channel),
			zap.String("recipient", recipientID),
			zap.String("template", template))
		return "", nil
	}

	token, err := d.Devices.GetFCMToken(ctx, recipientID)
	if err != nil {
		return "", fmt.Errorf("could not resolve push token for %s: %w", recipientID, err)
	}

	title, body := Render(template, data)
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}

	deliveryID, err := utils.FCMClient.Send(ctx, msg)
	if err != nil {
		return "", fmt.Errorf("failed to send FCM message: %w", err)
	}
	return deliveryID, nil
}
