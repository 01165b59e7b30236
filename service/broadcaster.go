// Package service wraps the lex/parse/assemble/emit pipeline as an HTTP+WebSocket server: a
// synchronous POST /assemble endpoint per request, and a /ws socket broadcasting each request's
// diagnostics live to subscribed clients as they're produced.
package service

import "sync"

// DiagnosticEvent is one diagnostic produced while assembling a request, broadcast to every
// subscriber of that request's session.
type DiagnosticEvent struct {
	SessionID string `json:"sessionId"`
	Severity  string `json:"severity"`
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Message   string `json:"message"`
}

// Subscription is one client's live feed of diagnostic events, optionally filtered to a session.
type Subscription struct {
	SessionID string
	Channel   chan DiagnosticEvent
}

// Broadcaster fans diagnostic events out to every subscribed client. One goroutine per server
// instance runs its event loop; publishing never blocks the assembling request.
type Broadcaster struct {
	mu            sync.RWMutex
	subscriptions map[*Subscription]bool
	broadcast     chan DiagnosticEvent
	register      chan *Subscription
	unregister    chan *Subscription
	done          chan struct{}
}

// NewBroadcaster creates and starts a new diagnostic broadcaster.
func NewBroadcaster() *Broadcaster {
	b := &Broadcaster{
		subscriptions: make(map[*Subscription]bool),
		broadcast:     make(chan DiagnosticEvent, 256),
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
				if sub.SessionID != "" && sub.SessionID != event.SessionID {
					continue
				}
				select {
				case sub.Channel <- event:
				default:
					// slow client, drop rather than block the broadcaster
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

// Subscribe registers a new client feed. sessionID empty means "all sessions".
func (b *Broadcaster) Subscribe(sessionID string) *Subscription {
	sub := &Subscription{
		SessionID: sessionID,
		Channel:   make(chan DiagnosticEvent, 64),
	}
	b.register <- sub
	return sub
}

// Unsubscribe removes a client feed and closes its channel.
func (b *Broadcaster) Unsubscribe(sub *Subscription) {
	b.unregister <- sub
}

// Broadcast publishes an event to every matching subscription, without blocking.
func (b *Broadcaster) Broadcast(event DiagnosticEvent) {
	select {
	case b.broadcast <- event:
	default:
		// broadcaster backlog full, drop rather than block the caller
	}
}

// Close shuts the broadcaster down and closes every subscription.
func (b *Broadcaster) Close() {
	close(b.done)
}

// SubscriptionCount reports the number of active subscriptions.
func (b *Broadcaster) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscriptions)
}
