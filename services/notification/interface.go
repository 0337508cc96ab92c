package notification

import "context"

// Dispatcher delivers multi-channel messages to workflow parties. Delivery
// is at-least-once and may fail silently from the engine's perspective; the
// engine never lets a dispatch failure affect a committed transition.
type Dispatcher interface {
	Send(ctx context.Context, channel, recipientID, template string, data map[string]string) (string, error)
}

// Channels the engine dispatches on.
const (
	ChannelPush  = "push"
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)
