package engine

// RevealOrder computes the showdown reveal order: the postflop rotation
// over non-folded seats (all-in seats included, since they can still win)
// rotated so the chronologically last aggressor who is still live shows
// first. With no live aggressor the rotation is returned unrotated.
func RevealOrder(seats []Seat, folded map[string]bool, aggressors []string) []string {
	order := PostflopOrder(seats, folded)
	for i := len(aggressors) - 1; i >= 0; i-- {
		if !folded[aggressors[i]] {
			return rotateTo(order, aggressors[i])
		}
	}
	return order
}
