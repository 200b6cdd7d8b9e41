package notify

import (
	"context"

	"gentil/internal/providers"
)

// LogSender writes notifications to the reminder log instead of a push service.
type LogSender struct {
	logger providers.Logger
}

func NewLogSender(logger providers.Logger) Sender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, n Notification) error {
	s.logger.Infof(providers.TypeReminder, "push user=%s token=%s title=%q body=%q", n.UserID, n.Token, n.Title, n.Body)
	return nil
}
