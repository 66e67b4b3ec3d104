package blog

import (
	"context"
	"encoding/json"

	"FitPulse/logger"

	"github.com/redis/go-redis/v9"
)

// Channel is the pub/sub channel carrying post lifecycle events.
const Channel = "blog"

// Event names published on the channel.
const (
	EventPostAdded       = "post-added"
	EventPostDeactivated = "post-deactivated"
	EventPostDeleted     = "post-deleted"
)

// Publisher delivers lifecycle events to external subscribers. Delivery is
// fire-and-forget: failures are logged and never surfaced to the caller.
type Publisher interface {
	Publish(ctx context.Context, channel, event string, payload interface{})
}

// Envelope wraps an event name with its payload on the wire.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// redisPublisher implements Publisher on Redis pub/sub.
type redisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a Redis-backed Publisher.
func NewRedisPublisher(client *redis.Client) Publisher {
	return &redisPublisher{client: client}
}

// Publish sends the event envelope to the channel. At-most-once, best-effort.
func (p *redisPublisher) Publish(ctx context.Context, channel, event string, payload interface{}) {
	msg, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		logger.Error("[Broadcast] failed to marshal event",
			logger.String("event", event), logger.ErrorField(err))
		return
	}

	if err := p.client.Publish(ctx, channel, msg).Err(); err != nil {
		logger.Warn("[Broadcast] publish failed",
			logger.String("channel", channel),
			logger.String("event", event),
			logger.ErrorField(err))
	}
}
