package shell

import "sync"

// DefaultSubscriberBuffer is the channel size used when Subscribe is given
// a non-positive buffer.
const DefaultSubscriberBuffer = 16

// EventType tags a change notification.
type EventType string

const (
	EventSnapshot EventType = "snapshot"
	EventClock    EventType = "clock"
)

// Event is a change notification. Snapshot is set for EventSnapshot, Clock
// for EventClock.
type Event struct {
	Type     EventType `json:"type"`
	Snapshot *Snapshot `json:"snapshot,omitempty"`
	Clock    string    `json:"time,omitempty"`
}

// Subscribe registers for change events. Delivery never blocks the shell: a
// subscriber whose buffer is full misses events, and the next snapshot
// supersedes what it missed. The returned func unsubscribes and closes the
// channel; it is safe to call more than once.
func (s *Shell) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	ch := make(chan Event, buffer)

	s.mu.Lock()
	key := s.nextSub
	s.nextSub++
	s.subs[key] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, key)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Shell) publishLocked(ev Event) {
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
