package engine

// Order building. Rotations are slices of seat ids, derived from the fixed
// seat layout with folded and all-in seats filtered out. The engine
// recomputes the rotation whenever a seat leaves it; an index into the
// current rotation identifies the seat due to act.

// PreflopOrder returns the preflop rotation for the given seats, excluding
// any seat whose id is in excluded. Heads-up the button acts first and the
// big blind last; at three or more seats action starts under the gun
// (index 3), continues through the cutoff, then button, small blind, and
// big blind last.
func PreflopOrder(seats []Seat, excluded map[string]bool) []string {
	if len(seats) == 2 {
		return filterIDs([]int{0, 1}, seats, excluded)
	}

	idx := make([]int, 0, len(seats))
	for i := 3; i < len(seats); i++ {
		idx = append(idx, i)
	}
	idx = append(idx, 0, 1, 2)
	return filterIDs(idx, seats, excluded)
}

// PostflopOrder returns the postflop rotation: small blind first, ascending
// seat index, wrapping, button last. Excluded seats are omitted entirely.
func PostflopOrder(seats []Seat, excluded map[string]bool) []string {
	idx := make([]int, 0, len(seats))
	for i := 1; i < len(seats); i++ {
		idx = append(idx, i)
	}
	idx = append(idx, 0)
	return filterIDs(idx, seats, excluded)
}

// RestartAfter rotates the order so that it begins immediately after the
// given seat and that seat becomes last. Used when the first-to-act seat
// straddles: everyone else acts first and the straddler closes the round.
// Unknown seats return the order unchanged.
func RestartAfter(order []string, seatID string) []string {
	pos := -1
	for i, id := range order {
		if id == seatID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return order
	}
	rotated := make([]string, 0, len(order))
	rotated = append(rotated, order[pos+1:]...)
	rotated = append(rotated, order[:pos+1]...)
	return rotated
}

// rotateTo rotates the order so the given seat appears first, preserving
// relative rotation order. Unknown seats return the order unchanged.
func rotateTo(order []string, seatID string) []string {
	pos := -1
	for i, id := range order {
		if id == seatID {
			pos = i
			break
		}
	}
	if pos <= 0 {
		return order
	}
	rotated := make([]string, 0, len(order))
	rotated = append(rotated, order[pos:]...)
	rotated = append(rotated, order[:pos]...)
	return rotated
}

func filterIDs(indexes []int, seats []Seat, excluded map[string]bool) []string {
	byIndex := make(map[int]string, len(seats))
	for _, s := range seats {
		byIndex[s.Index] = s.ID
	}

	order := make([]string, 0, len(indexes))
	for _, i := range indexes {
		id, ok := byIndex[i]
		if !ok || excluded[id] {
			continue
		}
		order = append(order, id)
	}
	return order
}

// indexOf returns the position of a seat id in the order, or -1.
func indexOf(order []string, seatID string) int {
	for i, id := range order {
		if id == seatID {
			return i
		}
	}
	return -1
}

// predecessorOf returns the seat acting immediately before the given seat
// in the rotation, wrapping. Returns empty for rotations of fewer than two
// seats or unknown ids.
func predecessorOf(order []string, seatID string) string {
	if len(order) < 2 {
		return ""
	}
	pos := indexOf(order, seatID)
	if pos < 0 {
		return ""
	}
	return order[(pos-1+len(order))%len(order)]
}
