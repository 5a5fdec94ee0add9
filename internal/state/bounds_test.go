package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectUnion(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected Rect
	}{
		{"disjoint", Rect{0, 0, 10, 10}, Rect{20, 20, 5, 5}, Rect{0, 0, 25, 25}},
		{"nested", Rect{0, 0, 10, 10}, Rect{2, 2, 2, 2}, Rect{0, 0, 10, 10}},
		{"empty left", Rect{}, Rect{3, 4, 5, 6}, Rect{3, 4, 5, 6}},
		{"empty right", Rect{3, 4, 5, 6}, Rect{}, Rect{3, 4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Union(tt.b))
		})
	}
}

func TestRectOverlaps(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	assert.True(t, r.Overlaps(Rect{X: 10, Y: 10, Width: 1, Height: 1}))
	assert.False(t, r.Overlaps(Rect{X: 11, Y: 0, Width: 1, Height: 1}))
}

func TestBoundsOfCommands(t *testing.T) {
	a := NewCommand(Point{0, 0}, Tool{Thickness: 2}, nil)
	a.Extend(Point{10, 0})
	b := NewCommand(Point{40, 40}, Tool{Glyph: "x", GlyphSize: 20}, nil)

	assert.Equal(t, Rect{X: -1, Y: -1, Width: 51, Height: 51}, BoundsOf([]Command{a, b}))
	assert.True(t, BoundsOf(nil).Empty())
}
