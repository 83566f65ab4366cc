package engine

// Seat represents one participant in the hand. Index 0 is the button,
// 1 the small blind, 2 the big blind, 3.. the remaining positions. In a
// heads-up hand index 0 is the button (posting the small blind) and index
// 1 the big blind.
type Seat struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Stack int    `json:"stack"`
	Index int    `json:"index"`
}

// seatByID returns the seat with the given id, or nil if unknown.
func seatByID(seats []Seat, id string) *Seat {
	for i := range seats {
		if seats[i].ID == id {
			return &seats[i]
		}
	}
	return nil
}

// SeatLabel returns the label for a seat id, falling back to the id itself
// when the seat is unknown.
func SeatLabel(seats []Seat, id string) string {
	if seat := seatByID(seats, id); seat != nil {
		return seat.Label
	}
	return id
}

// PositionLabel returns a conventional position name for a seat index at a
// table of the given size (BTN, SB, BB, UTG, .., CO). Used as a default when
// the session config does not label seats itself.
func PositionLabel(index, tableSize int) string {
	if tableSize == 2 {
		switch index {
		case 0:
			return "BTN"
		default:
			return "BB"
		}
	}
	switch {
	case index == 0:
		return "BTN"
	case index == 1:
		return "SB"
	case index == 2:
		return "BB"
	case index == tableSize-1:
		return "CO"
	case index == 3:
		return "UTG"
	default:
		return "MP"
	}
}
