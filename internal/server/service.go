package server

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/handtracker/internal/deck"
	"github.com/lox/handtracker/internal/engine"
)

// Command is one operator request over the wire. Op selects the engine
// operation; the remaining fields are op-specific.
type Command struct {
	Op     string   `json:"op"`
	Kind   string   `json:"kind,omitempty"`
	Amount int      `json:"amount,omitempty"`
	Street string   `json:"street,omitempty"`
	Slot   int      `json:"slot,omitempty"`
	Card   string   `json:"card,omitempty"`
	Cards  []string `json:"cards,omitempty"`
	SeatID string   `json:"seat_id,omitempty"`
}

// Service serializes operator commands onto the single engine instance.
// The engine itself is single-threaded; the mutex guarantees one command
// fully commits, history push included, before the next is accepted.
type Service struct {
	mu     sync.Mutex
	engine *engine.Engine
	logger *log.Logger
}

// NewService wraps an engine for concurrent command dispatch.
func NewService(eng *engine.Engine, logger *log.Logger) *Service {
	return &Service{
		engine: eng,
		logger: logger.WithPrefix("service"),
	}
}

// State returns a snapshot of the current engine state, taken under the
// service lock. Callers may marshal it while other commands are applied.
func (s *Service) State() *engine.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// Apply dispatches one command to the engine and returns a snapshot of
// the resulting state. Malformed commands return an error without touching
// the engine; well-formed but currently-invalid ones are engine-level
// no-ops.
func (s *Service) Apply(cmd Command) (*engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd.Op {
	case "action":
		kind, ok := engine.ParseActionKind(cmd.Kind)
		if !ok {
			return nil, fmt.Errorf("unknown action kind %q", cmd.Kind)
		}
		s.engine.CommitAction(kind, cmd.Amount)

	case "hole_cards":
		if len(cmd.Cards) != 2 {
			return nil, fmt.Errorf("hole_cards wants 2 cards, got %d", len(cmd.Cards))
		}
		c1, err := deck.ParseCard(cmd.Cards[0])
		if err != nil {
			return nil, err
		}
		c2, err := deck.ParseCard(cmd.Cards[1])
		if err != nil {
			return nil, err
		}
		s.engine.ConfirmHoleCards(c1, c2)

	case "skip_hole_cards":
		s.engine.SkipHoleCards()

	case "board":
		street, ok := engine.ParseStreet(cmd.Street)
		if !ok {
			return nil, fmt.Errorf("unknown street %q", cmd.Street)
		}
		if cmd.Card == "" {
			s.engine.UpdateBoard(street, cmd.Slot, nil)
			break
		}
		card, err := deck.ParseCard(cmd.Card)
		if err != nil {
			return nil, err
		}
		s.engine.UpdateBoard(street, cmd.Slot, &card)

	case "confirm_board":
		s.engine.ConfirmBoard()

	case "show":
		cards := make([]deck.Card, 0, len(cmd.Cards))
		for _, c := range cmd.Cards {
			card, err := deck.ParseCard(c)
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
		}
		s.engine.CommitShowdown(cmd.SeatID, cards)

	case "muck":
		s.engine.CommitShowdown(cmd.SeatID, nil)

	case "winner":
		s.engine.ConfirmWinner(cmd.SeatID)

	case "undo":
		s.engine.GoBack()

	default:
		return nil, fmt.Errorf("unknown op %q", cmd.Op)
	}

	s.logger.Debug("applied command", "op", cmd.Op, "phase", s.engine.State().Phase)
	return s.engine.Snapshot(), nil
}
