package notification

import (
	"context"

	"meetup-backend/pkg/fcm"
)

// fcmPusher adapts pkg/fcm to the Pusher interface
type fcmPusher struct {
	client *fcm.Client
}

// NewFCMPusher wraps an FCM client as a Pusher
func NewFCMPusher(client *fcm.Client) Pusher {
	return &fcmPusher{client: client}
}

func (p *fcmPusher) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	return p.client.SendToDevice(ctx, token, fcm.NotificationData{
		Title: title,
		Body:  body,
		Data:  data,
	})
}
