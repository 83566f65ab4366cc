package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionLabel(t *testing.T) {
	tests := []struct {
		index, tableSize int
		want             string
	}{
		{0, 2, "BTN"},
		{1, 2, "BB"},
		{0, 3, "BTN"},
		{1, 3, "SB"},
		{2, 3, "BB"},
		{3, 4, "CO"}, // 4-handed, the seat after the BB is the cutoff
		{3, 5, "UTG"},
		{4, 5, "CO"},
		{3, 6, "UTG"},
		{4, 6, "MP"},
		{5, 6, "CO"},
		{3, 9, "UTG"},
		{7, 9, "MP"},
		{8, 9, "CO"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PositionLabel(tt.index, tt.tableSize),
			"index %d at %d-handed", tt.index, tt.tableSize)
	}
}

func TestSeatLabelFallsBackToID(t *testing.T) {
	seats := []Seat{{ID: "hero", Label: "Hero"}}
	assert.Equal(t, "Hero", SeatLabel(seats, "hero"))
	assert.Equal(t, "ghost", SeatLabel(seats, "ghost"))
}
