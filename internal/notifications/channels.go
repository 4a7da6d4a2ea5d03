package notifications

import (
	"context"

	"github.com/sonuarjun3120/krishpafoods/internal/logs"
)

// Channel delivers one rendered message to one recipient. Delivery is
// attempted exactly once per record; retry policy lives with the caller.
type Channel interface {
	Deliver(ctx context.Context, recipient, subject, message string) error
}

type EmailSender interface {
	Send(to, subject, htmlBody string) error
}

type EmailChannel struct {
	sender EmailSender
}

func NewEmailChannel(sender EmailSender) *EmailChannel {
	return &EmailChannel{sender: sender}
}

func (c *EmailChannel) Deliver(ctx context.Context, recipient, subject, message string) error {
	return c.sender.Send(recipient, subject, message)
}

// LogChannel stands in for SMS and WhatsApp providers that are configured
// out of band. It records the delivery and reports success.
type LogChannel struct {
	channelName string
	logger      logs.Logger
}

func NewLogChannel(channelName string, logger logs.Logger) *LogChannel {
	return &LogChannel{channelName: channelName, logger: logger}
}

func (c *LogChannel) Deliver(ctx context.Context, recipient, subject, message string) error {
	c.logger.Info("notification delivered",
		"channel", c.channelName,
		"recipient", recipient,
		"message", message,
	)
	return nil
}
