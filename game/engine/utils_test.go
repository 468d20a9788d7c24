package engine

import (
	"strings"
	"testing"
)

func TestManhattanDistance(t *testing.T) {
	tests := []struct {
		from, to Point
		expected int
	}{
		{Point{0, 0}, Point{0, 0}, 0},
		{Point{0, 0}, Point{3, 4}, 7},
		{Point{5, 1}, Point{2, 3}, 5},
	}

	for _, test := range tests {
		if got := ManhattanDistance(test.from, test.to); got != test.expected {
			t.Errorf("ManhattanDistance(%v, %v): expected %d, got %d", test.from, test.to, test.expected, got)
		}
	}
}

func TestBoard(t *testing.T) {
	live := Live{
		Grid:  Grid{Width: 3, Height: 2},
		Snake: snakeOf(Right, Point{2, 0}, Point{1, 0}, Point{0, 0}),
		Food:  Food{Position: Point{3, 2}},
	}

	expected := []string{
		"...*",
		"....",
		"ooH.",
	}

	got := Board(live)
	if strings.Join(got, "\n") != strings.Join(expected, "\n") {
		t.Errorf("Unexpected board:\n%s\nexpected:\n%s", strings.Join(got, "\n"), strings.Join(expected, "\n"))
	}
}

func TestBoard_SnakeDrawnOverFood(t *testing.T) {
	live := Live{
		Grid:  Grid{Width: 1, Height: 1},
		Snake: NewSnake(Point{0, 1}, 1),
		Food:  Food{Position: Point{0, 1}},
	}

	got := Board(live)
	if got[0] != "H." {
		t.Errorf("Expected head over food, got %q", got[0])
	}
}

func TestBoard_Ended(t *testing.T) {
	got := Board(Ended{})
	if len(got) != 1 || got[0] != GameOverBanner {
		t.Errorf("Unexpected ended board %v", got)
	}
}
