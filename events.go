package icons

import (
	"image"

	"github.com/google/uuid"
)

// subscriberBuffer is how many undelivered events a subscriber may lag
// behind before further events for it are dropped. Publishing never blocks
// the run loop.
const subscriberBuffer = 64

// Event announces one successful resolution: key plus the decoded,
// display-sized image. A key may be announced again later, e.g. after
// eviction and re-resolution; consumers must apply events idempotently.
type Event struct {
	Icon image.Image
	Key  string
}

// Subscription is a registered consumer of resolution events.
type Subscription struct {
	id     uuid.UUID
	events chan Event
}

// Events returns the channel resolution events arrive on. It is closed when
// the subscription is cancelled or the cache shuts down.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Subscribe registers a consumer of resolution events. A subscriber that
// stops draining its channel misses events rather than stalling the cache.
func (c *Cache) Subscribe() *Subscription {
	sub := &Subscription{id: uuid.New(), events: make(chan Event, subscriberBuffer)}
	if !c.do(func() { c.subs[sub.id] = sub.events }) {
		close(sub.events)
	}
	return sub
}

// Unsubscribe cancels a subscription and closes its channel. Safe to call
// with nil or after Close.
func (c *Cache) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	c.do(func() {
		if ch, ok := c.subs[sub.id]; ok {
			delete(c.subs, sub.id)
			close(ch)
		}
	})
}

// publish fans an event out to all subscribers without blocking.
// Runs on the run loop.
func (c *Cache) publish(key string, icon image.Image) {
	for _, ch := range c.subs {
		select {
		case ch <- Event{Key: key, Icon: icon}:
		default:
		}
	}
}
