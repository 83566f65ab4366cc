package engine

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river"}[s]
}

// MarshalText implements encoding.TextMarshaler so streets serialize by name,
// including when used as map keys.
func (s Street) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseStreet parses a street name as produced by Street.String.
func ParseStreet(s string) (Street, bool) {
	for st := Preflop; st <= River; st++ {
		if st.String() == s {
			return st, true
		}
	}
	return 0, false
}

// BoardSlots returns how many community cards the street reveals.
// Preflop has no board.
func (s Street) BoardSlots() int {
	switch s {
	case Flop:
		return 3
	case Turn, River:
		return 1
	default:
		return 0
	}
}

// Phase represents where the hand is in its lifecycle. Exactly one phase
// holds at a time; actions are only accepted during PhaseAction.
type Phase int

const (
	// PhaseHoleCards waits for the hero's hole cards to be confirmed.
	PhaseHoleCards Phase = iota
	// PhaseAction waits for the current seat's action.
	PhaseAction
	// PhaseBoard waits for the street's community cards to be confirmed.
	PhaseBoard
	// PhaseShowdown consumes the reveal queue one show/muck at a time.
	PhaseShowdown
	// PhaseWinner waits for the operator to designate the winner.
	PhaseWinner
	// PhaseDone is terminal; only GoBack leaves it.
	PhaseDone
)

func (p Phase) String() string {
	return [...]string{"hole_cards", "action", "board", "showdown", "winner", "done"}[p]
}

// MarshalText implements encoding.TextMarshaler
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// ActionKind represents a player action
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Bet
	Raise
	AllIn
	Straddle
)

func (a ActionKind) String() string {
	return [...]string{"fold", "check", "call", "bet", "raise", "allin", "straddle"}[a]
}

// MarshalText implements encoding.TextMarshaler
func (a ActionKind) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// aggressive reports whether the kind can raise the bet level.
func (a ActionKind) aggressive() bool {
	return a == Bet || a == Raise || a == AllIn
}

// ParseActionKind parses an action name as produced by ActionKind.String.
func ParseActionKind(s string) (ActionKind, bool) {
	for a := Fold; a <= Straddle; a++ {
		if a.String() == s {
			return a, true
		}
	}
	return 0, false
}
