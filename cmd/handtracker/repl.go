package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/handtracker/internal/deck"
	"github.com/lox/handtracker/internal/engine"
	"github.com/lox/handtracker/internal/session"
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#1A6340")).
			Padding(0, 1)
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)
	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D04545"))
)

// runInteractive drives one hand from a stdin command loop.
func runInteractive(cfg *session.Config, logger *log.Logger) error {
	eng := cfg.NewEngine(engine.WithLogger(logger))
	repl := &repl{eng: eng, currency: cfg.Session.Currency, out: os.Stdout}

	fmt.Println("Tracking a hand. Commands: hole <c1> <c2>, skip, fold, check, call,")
	fmt.Println("bet <n>, raise <n>, allin [n], straddle, board <cards..>, confirm,")
	fmt.Println("show <c1> <c2>, muck, winner <seat>, undo, state, quit")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		repl.printStatus()
		fmt.Print(promptStyle.Render("> "))
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		if err := repl.dispatch(line); err != nil {
			fmt.Println(errStyle.Render(err.Error()))
		}
		if eng.State().Phase == engine.PhaseDone {
			s := eng.State()
			winner := engine.SeatLabel(s.Seats, s.WinnerID)
			fmt.Printf("Hand complete: %s wins %s%d\n", winner, repl.currency, s.Pot)
			return nil
		}
	}
}

type repl struct {
	eng      *engine.Engine
	currency string
	out      io.Writer
}

func (r *repl) printStatus() {
	s := r.eng.State()
	parts := []string{
		fmt.Sprintf("%s %s", s.Street, s.Phase),
		fmt.Sprintf("pot %s%d", r.currency, s.Pot),
	}
	if id := s.ActingSeatID(); id != "" {
		parts = append(parts, fmt.Sprintf("to act: %s", engine.SeatLabel(s.Seats, id)))
		if owed := s.ToCall(id); owed > 0 {
			parts = append(parts, fmt.Sprintf("to call %s%d", r.currency, owed))
		}
	}
	if s.Phase == engine.PhaseShowdown && len(s.ShowdownQueue) > 0 {
		parts = append(parts, fmt.Sprintf("to reveal: %s", engine.SeatLabel(s.Seats, s.ShowdownQueue[0])))
	}
	fmt.Fprintln(r.out, statusStyle.Render(strings.Join(parts, " · ")))
}

func (r *repl) dispatch(line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "hole":
		if len(args) != 2 {
			return fmt.Errorf("usage: hole <card> <card>")
		}
		c1, err := deck.ParseCard(args[0])
		if err != nil {
			return err
		}
		c2, err := deck.ParseCard(args[1])
		if err != nil {
			return err
		}
		r.eng.ConfirmHoleCards(c1, c2)

	case "skip":
		r.eng.SkipHoleCards()

	case "fold", "check", "call", "straddle":
		kind, _ := engine.ParseActionKind(cmd)
		r.eng.CommitAction(kind, 0)

	case "bet", "raise":
		if len(args) != 1 {
			return fmt.Errorf("usage: %s <amount>", cmd)
		}
		amount, err := strconv.Atoi(args[0])
		if err != nil || amount <= 0 {
			return fmt.Errorf("invalid amount %q", args[0])
		}
		kind, _ := engine.ParseActionKind(cmd)
		r.eng.CommitAction(kind, amount)

	case "allin":
		amount := 0
		if len(args) == 1 {
			var err error
			amount, err = strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}
		}
		r.eng.CommitAction(engine.AllIn, amount)

	case "board":
		street := r.eng.State().Street
		if len(args) == 0 || len(args) > street.BoardSlots() {
			return fmt.Errorf("%s takes up to %d cards", street, street.BoardSlots())
		}
		for slot, arg := range args {
			card, err := deck.ParseCard(arg)
			if err != nil {
				return err
			}
			r.eng.UpdateBoard(street, slot, &card)
		}

	case "confirm":
		r.eng.ConfirmBoard()

	case "show":
		if len(args) != 2 {
			return fmt.Errorf("usage: show <card> <card>")
		}
		cards, err := deck.ParseCards(strings.Join(args, " "))
		if err != nil {
			return err
		}
		r.commitReveal(cards)

	case "muck":
		r.commitReveal(nil)

	case "winner":
		if len(args) != 1 {
			return fmt.Errorf("usage: winner <seat>")
		}
		r.eng.ConfirmWinner(args[0])

	case "undo":
		r.eng.GoBack()

	case "state":
		return r.dumpState()

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func (r *repl) commitReveal(cards []deck.Card) {
	s := r.eng.State()
	if len(s.ShowdownQueue) == 0 {
		return
	}
	r.eng.CommitShowdown(s.ShowdownQueue[0], cards)
}

func (r *repl) dumpState() error {
	s := r.eng.State()
	for _, seat := range s.Seats {
		status := ""
		switch {
		case s.Folded[seat.ID]:
			status = "folded"
		case s.AllIn[seat.ID]:
			status = "all-in"
		}
		fmt.Fprintf(r.out, "%-8s in for %s%d this street (%s%d total) %s\n",
			seat.Label, r.currency, s.Contrib[seat.ID], r.currency, s.Committed[seat.ID], status)
	}
	board := make([]string, 0, 5)
	for _, street := range []engine.Street{engine.Flop, engine.Turn, engine.River} {
		for _, c := range s.Board[street] {
			if c != nil {
				board = append(board, c.Display())
			}
		}
	}
	if len(board) > 0 {
		fmt.Fprintf(r.out, "board: %s\n", strings.Join(board, " "))
	}
	return nil
}
