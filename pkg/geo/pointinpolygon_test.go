package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func square() []Point {
	return []Point{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
}

func TestContainsSquare(t *testing.T) {
	tests := []struct {
		name   string
		point  Point
		inside bool
	}{
		{"center", Point{5, 5}, true},
		{"near corner", Point{1, 9}, true},
		{"outside both axes", Point{15, 15}, false},
		{"outside latitude", Point{-1, 5}, false},
		{"outside longitude", Point{5, 11}, false},
		{"far away", Point{20, 20}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.inside, Contains(tt.point, square()))
		})
	}
}

func TestContainsDegeneratePolygons(t *testing.T) {
	points := []Point{{5, 5}, {0, 0}, {-3, 7}}

	for _, poly := range [][]Point{nil, {}, {{0, 0}}, {{0, 0}, {0, 10}}} {
		for _, p := range points {
			assert.False(t, Contains(p, poly), "degenerate polygon must contain nothing")
		}
	}
}

func TestContainsConcavePolygon(t *testing.T) {
	// U-shape: the notch between the prongs is outside.
	poly := []Point{{0, 0}, {0, 10}, {10, 10}, {10, 7}, {3, 7}, {3, 3}, {10, 3}, {10, 0}}

	assert.True(t, Contains(Point{1, 5}, poly))
	assert.True(t, Contains(Point{5, 1}, poly))
	assert.False(t, Contains(Point{7, 5}, poly))
}
