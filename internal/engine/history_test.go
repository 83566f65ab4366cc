package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handtracker/internal/deck"
)

func TestUndoRestoresStateForEveryActionKind(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T, e *Engine)
		kind   ActionKind
		amount int
	}{
		{name: "fold", kind: Fold},
		{name: "call", kind: Call},
		{name: "bet_preflop_raise", kind: Raise, amount: 30},
		{name: "allin", kind: AllIn},
		{name: "straddle", kind: Straddle},
		{
			name: "check_postflop",
			setup: func(t *testing.T, e *Engine) {
				e.CommitAction(Call, 0)
				e.CommitAction(Call, 0)
				e.CommitAction(Check, 0)
				confirmFlop(t, e)
			},
			kind: Check,
		},
		{
			name: "bet_postflop",
			setup: func(t *testing.T, e *Engine) {
				e.CommitAction(Call, 0)
				e.CommitAction(Call, 0)
				e.CommitAction(Check, 0)
				confirmFlop(t, e)
			},
			kind:   Bet,
			amount: 25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := []string{"btn", "sb", "bb", "utg", "hj", "co"}
			e := newTestEngine(t, ids, 5, 10)
			if tt.setup != nil {
				tt.setup(t, e)
			}
			require.Equal(t, PhaseAction, e.State().Phase)

			before := e.State().clone()
			e.CommitAction(tt.kind, tt.amount)
			e.GoBack()

			assert.Equal(t, before, e.State())
		})
	}
}

func TestUndoRestoresEveryMutatingOperation(t *testing.T) {
	e := newTestEngine(t, []string{"btn", "sb", "bb"}, 5, 10)
	e.CommitAction(Call, 0)
	e.CommitAction(Call, 0)
	e.CommitAction(Check, 0)
	require.Equal(t, PhaseBoard, e.State().Phase)

	// Board update and confirm.
	before := e.State().clone()
	c := mustCard(t, "As")
	e.UpdateBoard(Flop, 0, &c)
	e.GoBack()
	require.Equal(t, before, e.State())

	confirmFlop(t, e)
	before = e.State().clone()
	e.GoBack()
	require.Equal(t, PhaseBoard, e.State().Phase)

	// Redo the confirm and walk to a winner for the remaining operations.
	e.ConfirmBoard()
	require.Equal(t, before, e.State())

	e.CommitAction(Fold, 0) // sb
	before = e.State().clone()
	e.CommitAction(Fold, 0) // bb; btn wins
	require.Equal(t, PhaseWinner, e.State().Phase)
	e.GoBack()
	require.Equal(t, before, e.State())

	e.CommitAction(Fold, 0)
	before = e.State().clone()
	e.ConfirmWinner("btn")
	require.Equal(t, PhaseDone, e.State().Phase)
	e.GoBack()
	assert.Equal(t, before, e.State())
}

func TestUndoDepthUnbounded(t *testing.T) {
	e := newTestEngine(t, []string{"btn", "sb", "bb"}, 5, 10)
	initial := e.State().clone()

	e.CommitAction(Raise, 30)
	e.CommitAction(Raise, 90)
	e.CommitAction(Raise, 270)
	e.CommitAction(Call, 0)
	e.CommitAction(Call, 0)

	for e.CanGoBack() {
		e.GoBack()
	}

	// One snapshot was taken by SkipHoleCards, so undo walks past it back
	// to the freshly constructed hand.
	initial.Phase = PhaseHoleCards
	assert.Equal(t, initial, e.State())
	assert.Equal(t, 15, e.State().Pot)
}

func TestGoBackOnEmptyHistoryIsNoOp(t *testing.T) {
	seats := []Seat{{ID: "a", Index: 0, Stack: 100}, {ID: "b", Index: 1, Stack: 100}}
	e := New(seats, 1, 2)

	before := e.State().clone()
	e.GoBack()

	assert.Equal(t, before, e.State())
}

func TestSnapshotsAreIsolatedFromLiveState(t *testing.T) {
	h := NewHistory()
	s := newState(layoutSeats(3), 5, 10)
	h.Push(s)

	s.Pot = 999
	s.Folded["p1"] = true
	s.Contrib["p2"] = 777
	card := deck.Card{Rank: deck.Ace, Suit: deck.Spades}
	s.Board[Flop][0] = &card

	restored := h.Pop()
	require.NotNil(t, restored)
	assert.Equal(t, 15, restored.Pot)
	assert.False(t, restored.Folded["p1"])
	assert.Equal(t, 10, restored.Contrib["p2"])
	assert.Nil(t, restored.Board[Flop][0])
}

func TestHistoryPopOrder(t *testing.T) {
	h := NewHistory()
	s := newState(layoutSeats(2), 1, 2)

	s.Pot = 10
	h.Push(s)
	s.Pot = 20
	h.Push(s)

	require.Equal(t, 2, h.Len())
	assert.Equal(t, 20, h.Pop().Pot)
	assert.Equal(t, 10, h.Pop().Pot)
	assert.Nil(t, h.Pop())
}
