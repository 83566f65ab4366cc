package engine

import "testing"

func TestPostOnlyMovesChipsForward(t *testing.T) {
	s := newState(layoutSeats(3), 5, 10)

	s.post("p0", 30)
	if s.Contrib["p0"] != 30 || s.Pot != 45 {
		t.Fatalf("post: contrib=%d pot=%d", s.Contrib["p0"], s.Pot)
	}

	// Lower or equal targets are ignored; the pot never moves backward.
	s.post("p0", 20)
	s.post("p0", 30)
	if s.Contrib["p0"] != 30 || s.Pot != 45 {
		t.Errorf("backward post mutated state: contrib=%d pot=%d", s.Contrib["p0"], s.Pot)
	}

	s.post("p0", 50)
	if s.Committed["p0"] != 50 {
		t.Errorf("committed = %d, want 50", s.Committed["p0"])
	}
}

func TestToCallNeverNegative(t *testing.T) {
	s := newState(layoutSeats(3), 5, 10)

	if got := s.ToCall("p0"); got != 10 {
		t.Errorf("button toCall = %d, want 10", got)
	}
	if got := s.ToCall("p2"); got != 0 {
		t.Errorf("big blind toCall = %d, want 0", got)
	}

	s.post("p2", 40)
	if got := s.ToCall("p2"); got != 0 {
		t.Errorf("over-contributed toCall = %d, want 0", got)
	}
}

func TestShortStackBlindCapped(t *testing.T) {
	seats := layoutSeats(3)
	seats[2].Stack = 4 // big blind cannot cover

	s := newState(seats, 5, 10)

	if s.Contrib["p2"] != 4 {
		t.Errorf("short blind contrib = %d, want 4", s.Contrib["p2"])
	}
	if s.CurrentBet != 10 {
		t.Errorf("current bet = %d, want 10", s.CurrentBet)
	}
}
