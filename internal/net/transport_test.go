package net

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LocalPaint/internal/state"
)

func statsOf(committed, redoable int) state.Stats {
	return state.Stats{Committed: committed, Redoable: redoable}
}

func TestSessionManager(t *testing.T) {
	sm := NewSessionManager(nil)
	s := &Session{ID: "abc", remote: "127.0.0.1:1"}

	sm.Add(s)
	assert.Equal(t, 1, sm.Len())
	got, err := sm.Get("abc")
	require.NoError(t, err)
	assert.Same(t, s, got)

	sm.Remove("abc")
	sm.Remove("abc")
	assert.Equal(t, 0, sm.Len())
	_, err = sm.Get("abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestShareURL(t *testing.T) {
	url, err := ShareURL("192.168.1.20:8888")
	require.NoError(t, err)
	assert.Equal(t, "http://192.168.1.20:8888/", url)

	url, err = ShareURL(":9000")
	require.NoError(t, err)
	assert.Regexp(t, `^http://[^/]+:9000/$`, url)

	_, err = ShareURL("no-port")
	assert.Error(t, err)
}

func TestListenPort(t *testing.T) {
	p, err := listenPort(":8888")
	require.NoError(t, err)
	assert.Equal(t, 8888, p)

	_, err = listenPort("localhost")
	assert.Error(t, err)
}
