package interfaces

import "context"

type NotificationPublisher interface {
	Publish(ctx context.Context, message string, attributes map[string]string) error
}
