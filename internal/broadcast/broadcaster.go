// Package broadcast implements the in-process fan-out of upload events.
// Delivery is best-effort and at-most-once per connected subscriber; there
// is no replay buffer, so a client that connects after an event must
// re-list the file registry to reconcile.
package broadcast

import (
	"sync"

	"github.com/dtroode/fileshare-server/internal/logger"
	"github.com/dtroode/fileshare-server/internal/model"
)

// subscriberBuffer bounds how many undelivered events a subscriber may
// hold before further events are dropped for it.
const subscriberBuffer = 16

var _ model.Broadcaster = (*Broadcaster)(nil)

// Broadcaster holds the live subscriber set. It is created at startup,
// injected where publish/subscribe is needed, and closed at shutdown.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[chan model.UploadEvent]struct{}
	closed bool
	logger *logger.Logger
}

// New creates a Broadcaster with an empty subscriber set.
func New(logger *logger.Logger) *Broadcaster {
	return &Broadcaster{
		subs:   make(map[chan model.UploadEvent]struct{}),
		logger: logger,
	}
}

// Subscribe registers a new subscriber and returns its event channel with
// an unsubscribe func. The channel is closed on unsubscribe or Close;
// unsubscribe is idempotent and must be called when the client disconnects
// so the fan-out set holds no dangling references.
func (b *Broadcaster) Subscribe() (<-chan model.UploadEvent, func()) {
	ch := make(chan model.UploadEvent, subscriberBuffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[ch]; ok {
				delete(b.subs, ch)
				close(ch)
			}
		})
	}

	return ch, unsubscribe
}

// Publish fans the event out to every currently connected subscriber.
// The send never blocks: a subscriber with a full buffer loses the event
// rather than backpressuring the uploader.
func (b *Broadcaster) Publish(event model.UploadEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	for ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.logger.Warn("dropping upload event for slow subscriber",
				"filename", event.Filename)
		}
	}
}

// Close unregisters and closes all subscriber channels. Publish and
// Subscribe become no-ops afterwards.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}
