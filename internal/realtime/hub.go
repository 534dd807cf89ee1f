package realtime

import "sync"

const subscriberBuffer = 16

// Hub fans change events out to the SSE subscribers of the matching user.
// Slow subscribers drop events instead of blocking writers; the client treats
// any event as a hint to re-fetch, so a dropped one only delays convergence.
type Hub struct {
	mu          sync.Mutex
	subscribers map[*Subscriber]struct{}
}

type Subscriber struct {
	userID string
	events chan Event
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[*Subscriber]struct{})}
}

func (hub *Hub) Subscribe(userID string) *Subscriber {
	subscriber := &Subscriber{userID: userID, events: make(chan Event, subscriberBuffer)}
	hub.mu.Lock()
	hub.subscribers[subscriber] = struct{}{}
	hub.mu.Unlock()
	return subscriber
}

func (hub *Hub) Unsubscribe(subscriber *Subscriber) {
	hub.mu.Lock()
	if _, subscribed := hub.subscribers[subscriber]; subscribed {
		delete(hub.subscribers, subscriber)
		close(subscriber.events)
	}
	hub.mu.Unlock()
}

func (hub *Hub) Publish(event Event) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	for subscriber := range hub.subscribers {
		if subscriber.userID != event.UserID {
			continue
		}
		select {
		case subscriber.events <- event:
		default:
		}
	}
}

func (hub *Hub) SubscriberCount() int {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return len(hub.subscribers)
}

func (subscriber *Subscriber) Events() <-chan Event {
	return subscriber.events
}
