package dashboard

import "sync"

// Hub fans snapshots out to stream subscribers. Each subscriber holds at most
// one pending snapshot; a newer one replaces it.
type Hub struct {
	mu     sync.Mutex
	seq    uint64
	last   *Snapshot
	subs   map[chan *Snapshot]struct{}
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan *Snapshot]struct{})}
}

// Publish stamps s with the next sequence number and delivers it.
func (h *Hub) Publish(s *Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	h.seq++
	s.Seq = h.seq
	h.last = s

	for ch := range h.subs {
		select {
		case ch <- s:
		default:
			// replace the unread snapshot
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
}

func (h *Hub) Last() *Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// Subscribe returns a channel of snapshots and a func that releases it.
// The channel is closed when the hub closes.
func (h *Hub) Subscribe() (<-chan *Snapshot, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan *Snapshot, 1)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[ch]; ok {
				delete(h.subs, ch)
				close(ch)
			}
		})
	}
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}
