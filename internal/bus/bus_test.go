package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LocalPaint/internal/state"
)

func TestNotifyCallsListenersInOrder(t *testing.T) {
	b := New(nil)
	var order []string
	b.Subscribe(HistoryChanged, func(Event) { order = append(order, "first") })
	b.SubscribeAll(func(Event) { order = append(order, "second") })
	b.Subscribe(HistoryChanged, func(Event) { order = append(order, "third") })

	require.NoError(t, b.Notify(HistoryEvent{}))
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestNotifyFiltersByKind(t *testing.T) {
	b := New(nil)
	var history, preview, all int
	b.Subscribe(HistoryChanged, func(Event) { history++ })
	b.Subscribe(PreviewChanged, func(Event) { preview++ })
	b.SubscribeAll(func(Event) { all++ })

	b.Notify(HistoryEvent{})
	b.Notify(PreviewEvent{X: 1, Y: 2, Visible: true})
	b.Notify(PreviewEvent{})

	assert.Equal(t, 1, history)
	assert.Equal(t, 2, preview)
	assert.Equal(t, 3, all)
}

func TestNotifyCarriesPayload(t *testing.T) {
	b := New(nil)
	var got Event
	b.SubscribeAll(func(ev Event) { got = ev })

	b.Notify(HistoryEvent{Stats: state.Stats{Committed: 2, Redoable: 1}})

	ev, ok := got.(HistoryEvent)
	require.True(t, ok)
	assert.Equal(t, 2, ev.Stats.Committed)
	assert.Equal(t, 1, ev.Stats.Redoable)
}

func TestUnsubscribe(t *testing.T) {
	b := New(nil)
	calls := 0
	cancel := b.SubscribeAll(func(Event) { calls++ })
	b.Notify(HistoryEvent{})
	cancel()
	b.Notify(HistoryEvent{})
	assert.Equal(t, 1, calls)
}

func TestNestedNotifyIsQueued(t *testing.T) {
	b := New(nil)
	var trace []string
	b.Subscribe(HistoryChanged, func(Event) {
		trace = append(trace, "history:start")
		b.Notify(PreviewEvent{})
		trace = append(trace, "history:end")
	})
	b.Subscribe(PreviewChanged, func(Event) { trace = append(trace, "preview") })

	require.NoError(t, b.Notify(HistoryEvent{}))
	assert.Equal(t, []string{"history:start", "history:end", "preview"}, trace)
}

func TestCascadeIsCutOff(t *testing.T) {
	b := New(nil)
	calls := 0
	b.SubscribeAll(func(ev Event) {
		calls++
		b.Notify(ev)
	})

	err := b.Notify(HistoryEvent{})
	assert.ErrorIs(t, err, ErrCascade)
	assert.Equal(t, MaxCascade, calls)

	// the bus is usable again afterwards
	b.Notify(PreviewEvent{})
	assert.Greater(t, calls, MaxCascade)
}

func TestListenerPanicReleasesBus(t *testing.T) {
	b := New(nil)
	fail := true
	calls := 0
	b.SubscribeAll(func(Event) {
		calls++
		if fail {
			panic("boom")
		}
	})

	assert.Panics(t, func() { b.Notify(HistoryEvent{}) })
	fail = false
	require.NoError(t, b.Notify(HistoryEvent{}))
	assert.Equal(t, 2, calls)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "history-changed", HistoryChanged.String())
	assert.Equal(t, "preview-changed", PreviewChanged.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestNotifyFromOtherGoroutineJoinsRunningDispatch(t *testing.T) {
	b := New(nil)
	entered := make(chan struct{})
	release := make(chan struct{})
	var kinds []Kind
	b.SubscribeAll(func(ev Event) {
		kinds = append(kinds, ev.Kind())
		if len(kinds) == 1 {
			close(entered)
			<-release
		}
	})

	done := make(chan error, 1)
	go func() { done <- b.Notify(HistoryEvent{}) }()
	<-entered

	// returns at once; the running dispatch delivers it
	require.NoError(t, b.Notify(PreviewEvent{}))
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, []Kind{HistoryChanged, PreviewChanged}, kinds)
}
