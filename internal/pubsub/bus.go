// Package pubsub is the in-process change-notification subject. Store
// mutators publish on a topic; UI-facing consumers (cart badge, mini cart,
// compare tray) subscribe and re-read on every message.
package pubsub

import "sync"

const (
	TopicCartChanged    = "cart.changed"
	TopicCompareChanged = "compare.changed"
)

type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan string
}

type Subscription struct {
	C     <-chan string
	topic string
	id    int
	bus   *Bus
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[int]chan string)}
}

func (b *Bus) Subscribe(topic string) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan string, 16)
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]chan string)
	}
	b.nextID++
	b.subs[topic][b.nextID] = ch
	return &Subscription{C: ch, topic: topic, id: b.nextID, bus: b}
}

func (s *Subscription) Unsubscribe() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	if chans, ok := s.bus.subs[s.topic]; ok {
		if ch, ok := chans[s.id]; ok {
			delete(chans, s.id)
			close(ch)
		}
	}
}

// Publish never blocks: a subscriber that has fallen 16 messages behind
// misses the notification and is expected to re-read on its next one.
func (b *Bus) Publish(topic, payload string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs[topic] {
		select {
		case ch <- payload:
		default:
		}
	}
}
