package engine

import (
	"time"

	"github.com/lox/handtracker/internal/deck"
)

// ActionRecord is one committed action in the hand log.
type ActionRecord struct {
	SeatID string     `json:"seat_id"`
	Kind   ActionKind `json:"kind"`
	Amount int        `json:"amount,omitempty"`
	Street Street     `json:"street"`
	At     time.Time  `json:"at"`
}

// ShowdownRecord is one consumed entry of the reveal queue: either a show
// with two cards or a muck with none.
type ShowdownRecord struct {
	SeatID string      `json:"seat_id"`
	Shown  bool        `json:"shown"`
	Cards  []deck.Card `json:"cards,omitempty"`
	At     time.Time   `json:"at"`
}

// ClosingKind selects the street-completion strategy in force.
type ClosingKind int

const (
	// ClosingLap ends the street after a full unraised lap of the rotation.
	ClosingLap ClosingKind = iota
	// ClosingFixed pins the closing seat, preflop-style (big blind or the
	// latest straddler).
	ClosingFixed
	// ClosingAfterAggressor pins the closing seat to the rotation
	// predecessor of the last bettor.
	ClosingAfterAggressor
)

func (k ClosingKind) String() string {
	return [...]string{"lap", "fixed", "after_aggressor"}[k]
}

// MarshalText implements encoding.TextMarshaler
func (k ClosingKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ClosingRule names the seat whose matched action ends the current street,
// or lap detection when no bet is outstanding.
type ClosingRule struct {
	Kind   ClosingKind `json:"kind"`
	SeatID string      `json:"seat_id,omitempty"`
}

// hasSeat reports whether the rule pins a closing seat.
func (r ClosingRule) hasSeat() bool {
	return r.Kind != ClosingLap && r.SeatID != ""
}

// State is the complete engine state for one hand. It is mutated only by
// the engine's serialized operations and published read-only to consumers
// after every call; rendering and hand-history layers derive everything
// from it.
type State struct {
	// HandID uniquely identifies this hand across sessions.
	HandID string `json:"hand_id"`

	Street Street `json:"street"`
	Phase  Phase  `json:"phase"`
	Seats  []Seat `json:"seats"`

	// Actions is the per-street action log.
	Actions map[Street][]ActionRecord `json:"actions"`

	// Board holds the community card slots per street (3 flop, 1 turn,
	// 1 river); nil slots have not been entered yet.
	Board map[Street][]*deck.Card `json:"board"`

	// Order is the current street's rotation with folded and all-in seats
	// filtered out; ActingIdx points at the seat due to act.
	Order     []string `json:"order"`
	ActingIdx int      `json:"acting_idx"`

	Folded map[string]bool `json:"folded"`
	AllIn  map[string]bool `json:"all_in"`

	// Acted tracks who has acted since the street began or the bet level
	// last rose; raises clear it so everyone must respond.
	Acted map[string]bool `json:"acted"`

	// CurrentBet is the bet level of the active street; Contrib tracks
	// chips committed this street, Committed chips committed whole-hand.
	CurrentBet int            `json:"current_bet"`
	Contrib    map[string]int `json:"contrib"`
	Committed  map[string]int `json:"committed"`
	Pot        int            `json:"pot"`

	Closing ClosingRule `json:"closing"`

	// Aggressors lists every seat that bet or raised, in order. The last
	// still-live entry seeds the showdown reveal order.
	Aggressors []string `json:"aggressors,omitempty"`

	HeroCards []deck.Card `json:"hero_cards,omitempty"`

	ShowdownQueue []string         `json:"showdown_queue,omitempty"`
	Showdowns     []ShowdownRecord `json:"showdowns,omitempty"`
	WinnerID      string           `json:"winner_id,omitempty"`
}

// newState builds the initial state for a hand: preflop rotation in place,
// blinds posted, big blind fixed as the closing seat, waiting on hole cards.
func newState(seats []Seat, smallBlind, bigBlind int) *State {
	s := &State{
		Street:    Preflop,
		Phase:     PhaseHoleCards,
		Seats:     seats,
		Actions:   make(map[Street][]ActionRecord),
		Board:     map[Street][]*deck.Card{Flop: make([]*deck.Card, 3), Turn: make([]*deck.Card, 1), River: make([]*deck.Card, 1)},
		Folded:    make(map[string]bool),
		AllIn:     make(map[string]bool),
		Acted:     make(map[string]bool),
		Contrib:   make(map[string]int),
		Committed: make(map[string]int),
	}

	s.Order = PreflopOrder(seats, nil)
	s.ActingIdx = 0

	sbIdx, bbIdx := 1, 2
	if len(seats) == 2 {
		// Heads-up the button posts the small blind.
		sbIdx, bbIdx = 0, 1
	}
	for i := range seats {
		switch seats[i].Index {
		case sbIdx:
			s.post(seats[i].ID, capToStack(&seats[i], smallBlind))
		case bbIdx:
			s.post(seats[i].ID, capToStack(&seats[i], bigBlind))
			s.Closing = ClosingRule{Kind: ClosingFixed, SeatID: seats[i].ID}
		}
	}
	s.CurrentBet = bigBlind

	return s
}

// ActingSeatID returns the id of the seat due to act, or empty when the
// phase defines no actor.
func (s *State) ActingSeatID() string {
	if s.Phase != PhaseAction || s.ActingIdx < 0 || s.ActingIdx >= len(s.Order) {
		return ""
	}
	return s.Order[s.ActingIdx]
}

// LiveSeatIDs returns the ids of non-folded seats in layout order.
func (s *State) LiveSeatIDs() []string {
	ids := make([]string, 0, len(s.Seats))
	for _, seat := range s.Seats {
		if !s.Folded[seat.ID] {
			ids = append(ids, seat.ID)
		}
	}
	return ids
}

// excludedFromActing returns the union of folded and all-in seats.
func (s *State) excludedFromActing() map[string]bool {
	out := make(map[string]bool, len(s.Folded)+len(s.AllIn))
	for id := range s.Folded {
		if s.Folded[id] {
			out[id] = true
		}
	}
	for id := range s.AllIn {
		if s.AllIn[id] {
			out[id] = true
		}
	}
	return out
}

// clone deep-copies the state for the history stack.
func (s *State) clone() *State {
	out := *s

	out.Seats = append([]Seat(nil), s.Seats...)
	out.Order = append([]string(nil), s.Order...)
	out.Aggressors = append([]string(nil), s.Aggressors...)
	out.HeroCards = append([]deck.Card(nil), s.HeroCards...)
	out.ShowdownQueue = append([]string(nil), s.ShowdownQueue...)
	out.Showdowns = append([]ShowdownRecord(nil), s.Showdowns...)

	out.Actions = make(map[Street][]ActionRecord, len(s.Actions))
	for street, recs := range s.Actions {
		out.Actions[street] = append([]ActionRecord(nil), recs...)
	}

	out.Board = make(map[Street][]*deck.Card, len(s.Board))
	for street, slots := range s.Board {
		copied := make([]*deck.Card, len(slots))
		for i, c := range slots {
			if c != nil {
				card := *c
				copied[i] = &card
			}
		}
		out.Board[street] = copied
	}

	out.Folded = copyBoolMap(s.Folded)
	out.AllIn = copyBoolMap(s.AllIn)
	out.Acted = copyBoolMap(s.Acted)
	out.Contrib = copyIntMap(s.Contrib)
	out.Committed = copyIntMap(s.Committed)

	return &out
}

func copyBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
