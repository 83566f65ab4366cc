// Package engine implements the turn-sequencing core for a single tracked
// hand of Texas Hold'em: it decides whose turn it is, applies actions,
// detects street completion, sequences the showdown reveal, and supports
// full stepwise undo. It never evaluates hand strength; the operator
// designates the winner.
package engine

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/handtracker/internal/deck"
	"github.com/lox/handtracker/internal/handid"
)

// Engine drives one hand from blinds to winner confirmation. It has no
// internal concurrency: callers issue one operation at a time and read the
// resulting state. Invalid or out-of-turn requests leave the state
// untouched; the caller is expected to only offer the currently legal
// action set.
type Engine struct {
	state   *State
	history *History
	clock   quartz.Clock
	logger  *log.Logger
}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithClock sets the clock used to timestamp records. Defaults to the real
// clock; tests inject a mock.
func WithClock(clock quartz.Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithLogger sets the structured logger. Defaults to a discard logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithAnte posts a dead ante from every seat at construction. Antes go
// straight to the pot and never count toward a street's bet level.
func WithAnte(ante int) Option {
	return func(e *Engine) {
		if ante <= 0 {
			return
		}
		for i := range e.state.Seats {
			seat := &e.state.Seats[i]
			amount := ante
			if seat.Stack > 0 {
				if behind := seat.Stack - e.state.Committed[seat.ID]; behind < amount {
					amount = behind
				}
			}
			if amount <= 0 {
				continue
			}
			e.state.Committed[seat.ID] += amount
			e.state.Pot += amount
		}
	}
}

// New creates an engine for one hand. Seats must be ordered by Index with
// at least two entries; blinds are posted immediately.
func New(seats []Seat, smallBlind, bigBlind int, opts ...Option) *Engine {
	if len(seats) < 2 {
		panic("at least 2 seats required")
	}

	e := &Engine{
		state:   newState(seats, smallBlind, bigBlind),
		history: NewHistory(),
		clock:   quartz.NewReal(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.state.HandID = handid.At(e.clock.Now())
	return e
}

// State returns the current engine state. Callers must treat it as
// read-only.
func (e *Engine) State() *State {
	return e.state
}

// Snapshot returns a deep copy of the current state. Unlike State, the
// copy stays valid while later operations mutate the engine, so it is safe
// to serialize or read from another goroutine.
func (e *Engine) Snapshot() *State {
	return e.state.clone()
}

// CurrentSeat returns the seat due to act, or nil when no actor is defined.
func (e *Engine) CurrentSeat() *Seat {
	id := e.state.ActingSeatID()
	if id == "" {
		return nil
	}
	return seatByID(e.state.Seats, id)
}

// ToCall returns the amount the acting seat owes, or zero when no actor is
// defined.
func (e *Engine) ToCall() int {
	id := e.state.ActingSeatID()
	if id == "" {
		return 0
	}
	return e.state.ToCall(id)
}

// ConfirmHoleCards records the hero's hole cards and opens preflop action.
// No-op outside the hole-card phase.
func (e *Engine) ConfirmHoleCards(card1, card2 deck.Card) {
	if e.state.Phase != PhaseHoleCards {
		e.logger.Debug("ignoring hole cards", "phase", e.state.Phase)
		return
	}
	e.history.Push(e.state)
	e.state.HeroCards = []deck.Card{card1, card2}
	e.state.Phase = PhaseAction
}

// SkipHoleCards opens preflop action without recording hero cards, for
// hands tracked from an observer's perspective. No-op outside the
// hole-card phase.
func (e *Engine) SkipHoleCards() {
	if e.state.Phase != PhaseHoleCards {
		return
	}
	e.history.Push(e.state)
	e.state.Phase = PhaseAction
}

// CommitAction applies one action for the current actor. The amount is the
// street-total target for bet/raise and optionally all-in; it is ignored
// for fold/check/call/straddle. Out-of-turn or invalid-phase requests are
// no-ops.
func (e *Engine) CommitAction(kind ActionKind, amount int) {
	s := e.state
	actor := s.ActingSeatID()
	if actor == "" {
		e.logger.Debug("no actor defined, ignoring action", "kind", kind)
		return
	}
	if kind == Straddle && !e.straddleAllowed(actor) {
		e.logger.Debug("straddle not available", "seat", actor)
		return
	}

	e.history.Push(s)
	e.logger.Debug("committing action", "seat", actor, "kind", kind, "amount", amount)

	order := append([]string(nil), s.Order...)
	actorPos := s.ActingIdx
	closingBefore := s.Closing
	betBefore := s.CurrentBet

	switch kind {
	case Fold:
		s.Folded[actor] = true

	case Check:
		// No financial effect; legality (toCall == 0) is the caller's
		// responsibility.

	case Call:
		s.post(actor, s.CurrentBet)

	case Bet, Raise:
		s.post(actor, amount)
		if amount > s.CurrentBet {
			s.CurrentBet = amount
		}
		s.Aggressors = append(s.Aggressors, actor)
		s.Closing = ClosingRule{Kind: ClosingAfterAggressor, SeatID: predecessorOf(order, actor)}

	case AllIn:
		target := e.allInTarget(actor, amount)
		raised := target > s.CurrentBet
		s.post(actor, target)
		if raised {
			s.CurrentBet = target
			s.Aggressors = append(s.Aggressors, actor)
			s.Closing = ClosingRule{Kind: ClosingAfterAggressor, SeatID: predecessorOf(order, actor)}
		}
		s.AllIn[actor] = true

	case Straddle:
		target := s.CurrentBet * 2
		s.post(actor, target)
		s.CurrentBet = target
		s.Order = RestartAfter(s.Order, actor)
		s.ActingIdx = 0
		s.Closing = ClosingRule{Kind: ClosingFixed, SeatID: actor}
	}

	// Raising the bet level obliges everyone to respond again; a straddle
	// is forced and obliges everyone including, eventually, the straddler.
	switch {
	case kind == Straddle:
		s.Acted = make(map[string]bool)
	case s.CurrentBet > betBefore:
		s.Acted = map[string]bool{actor: true}
	default:
		s.Acted[actor] = true
	}

	recAmount := s.Contrib[actor]
	if kind == Fold || kind == Check {
		recAmount = 0
	}
	s.Actions[s.Street] = append(s.Actions[s.Street], ActionRecord{
		SeatID: actor,
		Kind:   kind,
		Amount: recAmount,
		Street: s.Street,
		At:     e.clock.Now(),
	})

	if kind == Straddle {
		// The straddle re-derived the rotation itself; the next actor is
		// already first in the new order.
		return
	}

	// Re-filter the rotation and advance the cursor.
	removed := s.Folded[actor] || s.AllIn[actor]
	if removed {
		s.Order = append(order[:actorPos:actorPos], order[actorPos+1:]...)
	} else {
		s.ActingIdx = actorPos + 1
	}
	wrapped := s.ActingIdx >= len(s.Order)

	// A fold by the closing seat falls back to lap detection for this
	// decision and pins the new rotation's last seat for later ones.
	closingFolded := kind == Fold && closingBefore.hasSeat() && closingBefore.SeatID == actor
	if closingFolded && len(s.Order) > 0 {
		s.Closing = ClosingRule{Kind: closingBefore.Kind, SeatID: s.Order[len(s.Order)-1]}
	}

	if e.streetOver(actor, kind, closingBefore, closingFolded, wrapped) {
		e.endStreet()
		return
	}
	if wrapped {
		s.ActingIdx = 0
	}
}

// straddleAllowed reports whether the actor may straddle: preflop only,
// before any voluntary action.
func (e *Engine) straddleAllowed(actor string) bool {
	if e.state.Street != Preflop {
		return false
	}
	for _, rec := range e.state.Actions[Preflop] {
		if rec.Kind != Straddle {
			return false
		}
	}
	return true
}

// allInTarget resolves the street total an all-in commits: the explicit
// amount when positive, otherwise everything the seat has behind, falling
// back to the current bet when the stack is unknown.
func (e *Engine) allInTarget(actor string, amount int) int {
	if amount > 0 {
		return amount
	}
	seat := seatByID(e.state.Seats, actor)
	if seat == nil || seat.Stack <= 0 {
		return e.state.CurrentBet
	}
	behind := seat.Stack - e.state.Committed[actor]
	if behind <= 0 {
		return e.state.CurrentBet
	}
	return e.state.Contrib[actor] + behind
}

// streetOver applies the completion rules in order after an action.
func (e *Engine) streetOver(actor string, kind ActionKind, closingBefore ClosingRule, closingFolded, wrapped bool) bool {
	s := e.state

	// One live player left: the hand is over, not just the street.
	if len(s.LiveSeatIDs()) <= 1 {
		return true
	}

	// Nobody left who can act: run the remaining streets out.
	if len(s.Order) == 0 {
		return true
	}

	matched := e.allActiveMatched()

	// Unbet street: a full lap ends it.
	if s.CurrentBet == 0 {
		return wrapped
	}

	// A bet or raise by the rotation's last seat with everyone already
	// matched ends the street immediately.
	if kind.aggressive() && matched {
		if !s.AllIn[actor] && indexOf(s.Order, actor) == len(s.Order)-1 {
			return true
		}
		if kind == AllIn && len(s.Order) == 0 {
			return true
		}
	}

	// Call or fold against a bet: the closing seat's matched action ends
	// the street; if the closing seat itself just folded, fall back to lap
	// detection over the remaining rotation.
	if closingFolded {
		return matched && e.allActedInOrder()
	}
	if closingBefore.hasSeat() && closingBefore.SeatID == actor && matched {
		return true
	}

	return false
}

// allActiveMatched reports whether every seat still able to act has
// contributed the full current bet.
func (e *Engine) allActiveMatched() bool {
	for _, id := range e.state.Order {
		if e.state.Contrib[id] != e.state.CurrentBet {
			return false
		}
	}
	return true
}

// allActedInOrder reports whether every seat still in the rotation has
// acted since the bet level last rose.
func (e *Engine) allActedInOrder() bool {
	for _, id := range e.state.Order {
		if !e.state.Acted[id] {
			return false
		}
	}
	return true
}

// endStreet closes the active street: hand over, next board input, or
// showdown after the river.
func (e *Engine) endStreet() {
	s := e.state

	if len(s.LiveSeatIDs()) <= 1 {
		e.logger.Debug("hand over, single live seat", "street", s.Street)
		s.Phase = PhaseWinner
		s.ShowdownQueue = nil
		s.ActingIdx = -1
		return
	}

	if s.Street == River {
		e.beginShowdown()
		return
	}

	s.Street++
	s.Phase = PhaseBoard
	e.resetForStreet()
	e.logger.Debug("street complete", "street", s.Street, "pot", s.Pot)
}

// resetForStreet clears per-street betting state. The pot is never reset.
func (e *Engine) resetForStreet() {
	s := e.state
	for id := range s.Contrib {
		s.Contrib[id] = 0
	}
	s.CurrentBet = 0
	s.Acted = make(map[string]bool)
	s.Closing = ClosingRule{Kind: ClosingLap}
	s.Order = PostflopOrder(s.Seats, s.excludedFromActing())
	s.ActingIdx = 0
}

// UpdateBoard sets or clears one community card slot for a street. Flop
// has slots 0..2, turn and river slot 0. No-op outside the board phase or
// for invalid slots.
func (e *Engine) UpdateBoard(street Street, slot int, card *deck.Card) {
	s := e.state
	if s.Phase != PhaseBoard {
		e.logger.Debug("ignoring board update", "phase", s.Phase)
		return
	}
	slots, ok := s.Board[street]
	if !ok || slot < 0 || slot >= len(slots) {
		e.logger.Debug("invalid board slot", "street", street, "slot", slot)
		return
	}
	e.history.Push(s)
	if card == nil {
		s.Board[street][slot] = nil
		return
	}
	c := *card
	s.Board[street][slot] = &c
}

// ConfirmBoard commits the board for the active street and resumes action.
// When fewer than two seats can still act the street is run out without an
// action round: straight to the next board input, or to showdown after the
// river.
func (e *Engine) ConfirmBoard() {
	s := e.state
	if s.Phase != PhaseBoard {
		e.logger.Debug("ignoring board confirm", "phase", s.Phase)
		return
	}
	e.history.Push(s)

	if len(s.Order) >= 2 {
		s.Phase = PhaseAction
		return
	}

	// Run-out: nobody (or only one seat) can act.
	if s.Street == River {
		e.beginShowdown()
		return
	}
	s.Street++
	e.resetForStreet()
	s.Phase = PhaseBoard
}

// beginShowdown builds the reveal queue and enters the showdown phase, or
// goes straight to winner selection when fewer than two seats are live.
func (e *Engine) beginShowdown() {
	s := e.state
	live := s.LiveSeatIDs()
	if len(live) < 2 {
		s.Phase = PhaseWinner
		s.ShowdownQueue = nil
		s.ActingIdx = -1
		return
	}
	s.ShowdownQueue = RevealOrder(s.Seats, s.Folded, s.Aggressors)
	s.Phase = PhaseShowdown
	s.ActingIdx = -1
	e.logger.Debug("showdown", "queue", s.ShowdownQueue)
}

// CommitShowdown consumes the head of the reveal queue with a show (two
// cards) or muck (no cards). An empty queue advances to winner selection.
// No-op outside the showdown phase or for a seat that is not next.
func (e *Engine) CommitShowdown(seatID string, cards []deck.Card) {
	s := e.state
	if s.Phase != PhaseShowdown || len(s.ShowdownQueue) == 0 {
		e.logger.Debug("ignoring showdown commit", "phase", s.Phase)
		return
	}
	if s.ShowdownQueue[0] != seatID {
		e.logger.Debug("showdown commit out of order", "seat", seatID, "next", s.ShowdownQueue[0])
		return
	}
	e.history.Push(s)

	s.Showdowns = append(s.Showdowns, ShowdownRecord{
		SeatID: seatID,
		Shown:  len(cards) == 2,
		Cards:  append([]deck.Card(nil), cards...),
		At:     e.clock.Now(),
	})
	s.ShowdownQueue = s.ShowdownQueue[1:]
	if len(s.ShowdownQueue) == 0 {
		s.Phase = PhaseWinner
	}
}

// ConfirmWinner records the operator-designated winner and finishes the
// hand. Unknown seat ids and wrong phases are no-ops.
func (e *Engine) ConfirmWinner(seatID string) {
	s := e.state
	if s.Phase != PhaseWinner {
		e.logger.Debug("ignoring winner confirm", "phase", s.Phase)
		return
	}
	if seatByID(s.Seats, seatID) == nil {
		e.logger.Debug("unknown winner seat", "seat", seatID)
		return
	}
	e.history.Push(s)
	s.WinnerID = seatID
	s.Phase = PhaseDone
	e.logger.Info("hand complete", "winner", seatID, "pot", s.Pot)
}

// GoBack pops the latest history snapshot and restores it atomically.
// No-op with an empty history.
func (e *Engine) GoBack() {
	prev := e.history.Pop()
	if prev == nil {
		e.logger.Debug("nothing to undo")
		return
	}
	e.state = prev
}

// CanGoBack reports whether any history remains.
func (e *Engine) CanGoBack() bool {
	return e.history.Len() > 0
}
