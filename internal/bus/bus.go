// Package bus dispatches typed change notifications from the drawing model
// to whoever redraws the canvas.
//
// Dispatch is synchronous and runs on the caller's goroutine. Listeners
// registered for a kind are called in registration order. A listener that
// raises a new event does not recurse: the event is queued and delivered
// once the current dispatch returns.
package bus

import (
	"errors"
	"sync"

	"github.com/hashicorp/go-hclog"

	"LocalPaint/internal/state"
)

// MaxCascade bounds how many events a single Notify call may deliver,
// counting events raised by listeners along the way.
const MaxCascade = 64

// ErrCascade is returned when listeners keep raising events past MaxCascade.
var ErrCascade = errors.New("notification cascade limit reached")

// Kind identifies an event type.
type Kind int

const (
	// HistoryChanged fires after commit, undo, redo or clear.
	HistoryChanged Kind = iota
	// PreviewChanged fires when the cursor preview or the in-progress
	// command changes.
	PreviewChanged
)

func (k Kind) String() string {
	switch k {
	case HistoryChanged:
		return "history-changed"
	case PreviewChanged:
		return "preview-changed"
	default:
		return "unknown"
	}
}

// Event is a notification payload.
type Event interface {
	Kind() Kind
}

// HistoryEvent carries the history sizes after the change.
type HistoryEvent struct {
	Stats state.Stats
}

func (HistoryEvent) Kind() Kind { return HistoryChanged }

// PreviewEvent carries the pointer position after the change.
type PreviewEvent struct {
	X, Y    float64
	Visible bool
}

func (PreviewEvent) Kind() Kind { return PreviewChanged }

// Listener handles one event.
type Listener func(Event)

type subscription struct {
	id   uint64
	all  bool
	kind Kind
	fn   Listener
}

// Bus is a synchronous publish/subscribe point.
type Bus struct {
	mu     sync.Mutex
	subs   []subscription
	nextID uint64

	dispatching bool
	queue       []Event

	logger hclog.Logger
}

// New creates a bus. A nil logger discards output.
func New(logger hclog.Logger) *Bus {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Bus{logger: logger}
}

// Subscribe registers fn for events of kind. The returned func removes it.
func (b *Bus) Subscribe(kind Kind, fn Listener) func() {
	return b.add(subscription{kind: kind, fn: fn})
}

// SubscribeAll registers fn for every event kind.
func (b *Bus) SubscribeAll(fn Listener) func() {
	return b.add(subscription{all: true, fn: fn})
}

func (b *Bus) add(s subscription) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	s.id = b.nextID
	b.subs = append(b.subs, s)

	id := s.id
	return func() { b.remove(id) }
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Notify delivers ev to every matching listener. If a dispatch is already
// running, from a listener or another goroutine, ev is queued for that
// dispatch and Notify returns nil right away.
func (b *Bus) Notify(ev Event) error {
	if ev == nil {
		return nil
	}

	b.mu.Lock()
	if b.dispatching {
		b.queue = append(b.queue, ev)
		b.mu.Unlock()
		return nil
	}
	b.dispatching = true
	b.queue = append(b.queue[:0], ev)
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.dispatching = false
		b.queue = b.queue[:0]
		b.mu.Unlock()
	}()

	for delivered := 0; ; delivered++ {
		b.mu.Lock()
		if len(b.queue) == 0 {
			b.mu.Unlock()
			return nil
		}
		if delivered >= MaxCascade {
			dropped := len(b.queue)
			b.mu.Unlock()
			b.logger.Warn("dropping notifications", "dropped", dropped, "limit", MaxCascade)
			return ErrCascade
		}
		next := b.queue[0]
		b.queue = b.queue[1:]
		subs := b.matching(next.Kind())
		b.mu.Unlock()

		for _, fn := range subs {
			fn(next)
		}
	}
}

func (b *Bus) matching(kind Kind) []Listener {
	var out []Listener
	for _, s := range b.subs {
		if s.all || s.kind == kind {
			out = append(out, s.fn)
		}
	}
	return out
}
