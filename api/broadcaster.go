package api

import "sync"

// BroadcastEvent is a JSON-ready frame tagged with the session it
// belongs to.
type BroadcastEvent struct {
	SessionID string
	Data      any
}

// Subscription is one WebSocket client's feed, scoped to a single
// session.
type Subscription struct {
	SessionID string
	Channel   chan BroadcastEvent
}

// Broadcaster fans render-event frames out to every subscriber of the
// session they belong to. One instance is shared by all sessions.
type Broadcaster struct {
	mu            sync.RWMutex
	subscriptions map[*Subscription]bool
	broadcast     chan BroadcastEvent
	register      chan *Subscription
	unregister    chan *Subscription
	done          chan struct{}
}

// NewBroadcaster creates and starts a new event broadcaster.
func NewBroadcaster() *Broadcaster {
	b := &Broadcaster{
		subscriptions: make(map[*Subscription]bool),
		broadcast:     make(chan BroadcastEvent, 256),
		register:      make(chan *Subscription),
		unregister:    make(chan *Subscription),
		done:          make(chan struct{}),
	}
	go b.run()
	return b
}

func (b *Broadcaster) run() {
	for {
		select {
		case sub := <-b.register:
			b.mu.Lock()
			b.subscriptions[sub] = true
			b.mu.Unlock()

		case sub := <-b.unregister:
			b.mu.Lock()
			if b.subscriptions[sub] {
				delete(b.subscriptions, sub)
				close(sub.Channel)
			}
			b.mu.Unlock()

		case event := <-b.broadcast:
			b.mu.RLock()
			for sub := range b.subscriptions {
				if sub.SessionID != event.SessionID {
					continue
				}
				select {
				case sub.Channel <- event:
				default:
					// slow client, drop the frame rather than block the broadcaster
				}
			}
			b.mu.RUnlock()

		case <-b.done:
			b.mu.Lock()
			for sub := range b.subscriptions {
				close(sub.Channel)
			}
			b.subscriptions = make(map[*Subscription]bool)
			b.mu.Unlock()
			return
		}
	}
}

// Subscribe creates a subscription scoped to sessionID.
func (b *Broadcaster) Subscribe(sessionID string) *Subscription {
	sub := &Subscription{
		SessionID: sessionID,
		Channel:   make(chan BroadcastEvent, 256),
	}
	b.register <- sub
	return sub
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Broadcaster) Unsubscribe(sub *Subscription) {
	b.unregister <- sub
}

// Broadcast sends a frame to every subscriber of sessionID.
func (b *Broadcaster) Broadcast(sessionID string, data any) {
	select {
	case b.broadcast <- BroadcastEvent{SessionID: sessionID, Data: data}:
	default:
		// broadcaster is saturated; drop rather than block the producer
	}
}

// Close shuts down the broadcaster and every subscription.
func (b *Broadcaster) Close() {
	close(b.done)
}

// SubscriptionCount reports the number of live subscriptions.
func (b *Broadcaster) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscriptions)
}
