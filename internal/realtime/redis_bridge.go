package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisBridge mirrors events through a Redis pub/sub channel so every
// instance behind a load balancer delivers the same change feed. Publish
// forwards to Redis; the forwarder loop replays messages from other
// instances into the local hub.
type RedisBridge struct {
	hub     *Hub
	client  *goredis.Client
	channel string
}

func NewRedisBridge(hub *Hub, addr string, channel string) (*RedisBridge, error) {
	if channel == "" {
		channel = "fieldlog:events"
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisBridge{hub: hub, client: client, channel: channel}, nil
}

func (bridge *RedisBridge) Publish(event Event) {
	raw, err := json.Marshal(event)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := bridge.client.Publish(ctx, bridge.channel, raw).Err(); err != nil {
		log.Printf("realtime: redis publish failed: %v", err)
	}
}

func (bridge *RedisBridge) StartForwarder(ctx context.Context) error {
	subscription := bridge.client.Subscribe(ctx, bridge.channel)
	if _, err := subscription.Receive(ctx); err != nil {
		_ = subscription.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		messages := subscription.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = subscription.Close()
				return
			case message, open := <-messages:
				if !open || message == nil {
					_ = subscription.Close()
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(message.Payload), &event); err != nil {
					log.Printf("realtime: bad redis payload: %v", err)
					continue
				}
				bridge.hub.Publish(event)
			}
		}
	}()

	return nil
}

func (bridge *RedisBridge) Close() error {
	return bridge.client.Close()
}
