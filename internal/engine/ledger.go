package engine

// Contribution bookkeeping. Chips move in one direction only: a seat's
// street contribution rises toward a target, the committed total and the
// pot rise by the same delta. The pot only ever decreases through undo,
// which restores a whole prior snapshot. A single running pot is tracked;
// unequal all-ins are not split into side pots.

// post commits chips for a seat up to the given street total. Targets at
// or below the current contribution are ignored.
func (s *State) post(seatID string, target int) {
	delta := target - s.Contrib[seatID]
	if delta <= 0 {
		return
	}
	s.Contrib[seatID] = target
	s.Committed[seatID] += delta
	s.Pot += delta
}

// ToCall returns the amount the seat still owes on the active street,
// never negative.
func (s *State) ToCall(seatID string) int {
	owed := s.CurrentBet - s.Contrib[seatID]
	if owed < 0 {
		return 0
	}
	return owed
}

// capToStack limits a forced blind to what the seat has behind. Unknown
// stacks (zero) post the full blind.
func capToStack(seat *Seat, blind int) int {
	if seat.Stack > 0 && blind > seat.Stack {
		return seat.Stack
	}
	return blind
}
