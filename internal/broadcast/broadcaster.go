package broadcast

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"timeclock/internal/logger"
)

var (
	// ErrSubscriberClosed is returned by Send once a subscriber can no longer
	// accept frames. The broadcaster drops such subscribers.
	ErrSubscriberClosed = errors.New("subscriber closed")
	// ErrSubscriberBusy is returned by Send when a subscriber's outbound queue
	// is full. The frame is dropped for that subscriber only.
	ErrSubscriberBusy = errors.New("subscriber busy")
)

// Subscriber receives encoded events. Send must not block on the network.
type Subscriber interface {
	Send(payload []byte) error
}

// ChannelError reports a failed delivery to one subscriber.
type ChannelError struct {
	SubscriptionID string
	Err            error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("deliver to subscription %s: %v", e.SubscriptionID, e.Err)
}

func (e *ChannelError) Unwrap() error { return e.Err }

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	ID         string
	subscriber Subscriber
}

// Broadcaster owns a registry of subscribers. The zero value is not usable;
// create one with New and pass it to the components that need it.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscription
}

// New creates an empty Broadcaster.
func New() *Broadcaster {
	return &Broadcaster{subscribers: make(map[string]*Subscription)}
}

// Subscribe registers s and returns its handle.
func (b *Broadcaster) Subscribe(s Subscriber) *Subscription {
	sub := &Subscription{ID: uuid.NewString(), subscriber: s}

	b.mu.Lock()
	b.subscribers[sub.ID] = sub
	total := len(b.subscribers)
	b.mu.Unlock()

	logger.Get().Debugw("subscriber connected", "subscription_id", sub.ID, "subscribers", total)
	return sub
}

// Unsubscribe removes sub from the registry. It is safe to call more than
// once and with a nil handle.
func (b *Broadcaster) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	_, ok := b.subscribers[sub.ID]
	delete(b.subscribers, sub.ID)
	total := len(b.subscribers)
	b.mu.Unlock()

	if ok {
		logger.Get().Debugw("subscriber disconnected", "subscription_id", sub.ID, "subscribers", total)
	}
}

// Count returns the number of registered subscribers.
func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// CloseAll closes every subscriber that supports closing and empties the
// registry. Used on shutdown.
func (b *Broadcaster) CloseAll() {
	b.mu.Lock()
	targets := b.subscribers
	b.subscribers = make(map[string]*Subscription)
	b.mu.Unlock()

	for _, sub := range targets {
		if c, ok := sub.subscriber.(interface{ Close() }); ok {
			c.Close()
		}
	}
	logger.Get().Infow("closed push subscribers", "count", len(targets))
}

// Publish encodes event once and offers it to every registered subscriber.
// A failing subscriber never prevents delivery to the others and never
// surfaces an error to the caller. It returns the number of successful sends.
func (b *Broadcaster) Publish(event Event) int {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Get().Errorw("failed to encode event", "type", event.Type, "error", err)
		return 0
	}

	b.mu.RLock()
	targets := make([]*Subscription, 0, len(b.subscribers))
	for _, sub := range b.subscribers {
		targets = append(targets, sub)
	}
	b.mu.RUnlock()

	delivered := 0
	for _, sub := range targets {
		if err := deliver(sub, payload); err != nil {
			var chErr *ChannelError
			if errors.As(err, &chErr) && errors.Is(chErr.Err, ErrSubscriberClosed) {
				b.Unsubscribe(sub)
				continue
			}
			logger.Get().Warnw("event delivery failed", "type", event.Type, "error", err)
			continue
		}
		delivered++
	}
	return delivered
}

// deliver sends payload to one subscriber, converting errors and panics into
// a ChannelError.
func deliver(sub *Subscription, payload []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ChannelError{SubscriptionID: sub.ID, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if sendErr := sub.subscriber.Send(payload); sendErr != nil {
		return &ChannelError{SubscriptionID: sub.ID, Err: sendErr}
	}
	return nil
}
