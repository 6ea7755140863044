package notification

import (
	"context"
	"fmt"

	"lendvault/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// PushService sends push notifications to client devices.
type PushService interface {
	Send(ctx context.Context, token, title, body string) error
}

// FCMPushService implements PushService over Firebase Cloud Messaging.
type FCMPushService struct {
	Client *messaging.Client
}

// NewFCMPushService wraps the global FCM client initialized at startup.
func NewFCMPushService() *FCMPushService {
	return &FCMPushService{Client: utils.FCMClient}
}

// Send delivers one notification. Returns an error when FCM is not configured.
func (s *FCMPushService) Send(ctx context.Context, token, title, body string) error {
	if s.Client == nil {
		return fmt.Errorf("push notifications are not configured")
	}
	if token == "" {
		return fmt.Errorf("no device token registered")
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}

	id, err := s.Client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("fcm send failed: %w", err)
	}
	utils.GetLogger().Debug("Push notification sent", zap.String("messageID", id))
	return nil
}
