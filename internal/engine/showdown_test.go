package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handtracker/internal/deck"
)

// playTo runs a hand through preflop limps and postflop checks until the
// given street's action phase is open.
func playToRiver(t *testing.T, e *Engine) {
	t.Helper()
	// Preflop: limp around.
	for e.State().Street == Preflop && e.State().Phase == PhaseAction {
		if e.ToCall() > 0 {
			e.CommitAction(Call, 0)
		} else {
			e.CommitAction(Check, 0)
		}
	}
	confirmFlop(t, e)
	for e.State().Street == Flop && e.State().Phase == PhaseAction {
		e.CommitAction(Check, 0)
	}

	turn := mustCard(t, "2h")
	e.UpdateBoard(Turn, 0, &turn)
	e.ConfirmBoard()
	for e.State().Street == Turn && e.State().Phase == PhaseAction {
		e.CommitAction(Check, 0)
	}

	river := mustCard(t, "9d")
	e.UpdateBoard(River, 0, &river)
	e.ConfirmBoard()
	require.Equal(t, River, e.State().Street)
	require.Equal(t, PhaseAction, e.State().Phase)
}

func TestShowdownQueueStartsAtLastAggressor(t *testing.T) {
	e := newTestEngine(t, []string{"btn", "sb", "bb"}, 5, 10)
	playToRiver(t, e)

	e.CommitAction(Bet, 20) // sb is the last aggressor
	e.CommitAction(Call, 0) // bb
	e.CommitAction(Call, 0) // btn

	s := e.State()
	require.Equal(t, PhaseShowdown, s.Phase)
	assert.Equal(t, []string{"sb", "bb", "btn"}, s.ShowdownQueue)
}

func TestShowdownQueueUnrotatedWhenCheckedDown(t *testing.T) {
	e := newTestEngine(t, []string{"btn", "sb", "bb"}, 5, 10)
	playToRiver(t, e)

	for e.State().Phase == PhaseAction {
		e.CommitAction(Check, 0)
	}

	s := e.State()
	require.Equal(t, PhaseShowdown, s.Phase)
	assert.Equal(t, []string{"sb", "bb", "btn"}, s.ShowdownQueue,
		"no aggressor: plain postflop rotation")
}

func TestShowdownQueueRotatesToLaterAggressor(t *testing.T) {
	e := newTestEngine(t, []string{"btn", "sb", "bb"}, 5, 10)
	playToRiver(t, e)

	e.CommitAction(Check, 0) // sb
	e.CommitAction(Bet, 20)  // bb bets the river
	e.CommitAction(Call, 0)  // btn
	e.CommitAction(Call, 0)  // sb

	s := e.State()
	require.Equal(t, PhaseShowdown, s.Phase)
	assert.Equal(t, []string{"bb", "btn", "sb"}, s.ShowdownQueue)
}

func TestRevealOrderSkipsFoldedAggressor(t *testing.T) {
	seats := layoutSeats(4)
	folded := map[string]bool{"p3": true}

	// p3 was the last aggressor but folded to a re-raise by p2.
	order := RevealOrder(seats, folded, []string{"p3", "p2", "p3"})

	assert.Equal(t, []string{"p2", "p0", "p1"}, order)
}

func TestRevealOrderNoAggressors(t *testing.T) {
	order := RevealOrder(layoutSeats(4), nil, nil)
	assert.Equal(t, []string{"p1", "p2", "p3", "p0"}, order)
}

func TestCommitShowdownConsumesQueue(t *testing.T) {
	e := newTestEngine(t, []string{"btn", "sb", "bb"}, 5, 10)
	playToRiver(t, e)
	for e.State().Phase == PhaseAction {
		e.CommitAction(Check, 0)
	}
	s := e.State()
	require.Equal(t, []string{"sb", "bb", "btn"}, s.ShowdownQueue)

	// Out-of-order commits are ignored.
	e.CommitShowdown("btn", nil)
	require.Equal(t, []string{"sb", "bb", "btn"}, s.ShowdownQueue)

	e.CommitShowdown("sb", []deck.Card{mustCard(t, "Ah"), mustCard(t, "Kh")})
	e.CommitShowdown("bb", nil) // muck
	require.Equal(t, PhaseShowdown, s.Phase)

	e.CommitShowdown("btn", []deck.Card{mustCard(t, "Qc"), mustCard(t, "Qd")})

	assert.Equal(t, PhaseWinner, s.Phase)
	require.Len(t, s.Showdowns, 3)
	assert.True(t, s.Showdowns[0].Shown)
	assert.False(t, s.Showdowns[1].Shown)
	assert.Empty(t, s.Showdowns[1].Cards)
	assert.True(t, s.Showdowns[2].Shown)
}
