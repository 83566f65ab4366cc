// Package session loads the table setup for a tracked hand: stakes and the
// ordered seat list. The engine itself never reads files; the session layer
// turns an HCL description into the seats and blinds its constructor wants.
package session

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/handtracker/internal/engine"
)

// Config represents a complete session configuration
type Config struct {
	Session Settings     `hcl:"session,block"`
	Seats   []SeatConfig `hcl:"seat,block"`
}

// Settings contains table-level configuration
type Settings struct {
	SmallBlind int    `hcl:"small_blind"`
	BigBlind   int    `hcl:"big_blind"`
	Ante       int    `hcl:"ante,optional"`
	Currency   string `hcl:"currency,optional"`
}

// SeatConfig defines one seat. Seats are ordered as written: the first is
// the button, the second the small blind, the third the big blind.
type SeatConfig struct {
	ID    string `hcl:"id,label"`
	Label string `hcl:"label,optional"`
	Stack int    `hcl:"stack,optional"`
}

// Default returns a three-handed 5/10 session for quick starts.
func Default() *Config {
	return &Config{
		Session: Settings{SmallBlind: 5, BigBlind: 10, Currency: "$"},
		Seats: []SeatConfig{
			{ID: "btn", Stack: 1000},
			{ID: "sb", Stack: 1000},
			{ID: "bb", Stack: 1000},
		},
	}
}

// Load reads a session configuration from an HCL file. A missing file
// returns the default session.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Session.Currency == "" {
		config.Session.Currency = "$"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the session for structural problems before a hand starts.
func (c *Config) Validate() error {
	if c.Session.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive")
	}
	if c.Session.BigBlind <= c.Session.SmallBlind {
		return fmt.Errorf("big blind must be greater than small blind")
	}
	if c.Session.Ante < 0 {
		return fmt.Errorf("ante cannot be negative")
	}
	if len(c.Seats) < 2 || len(c.Seats) > 9 {
		return fmt.Errorf("seat count must be between 2 and 9, got %d", len(c.Seats))
	}

	seen := make(map[string]bool)
	for _, seat := range c.Seats {
		if seat.ID == "" {
			return fmt.Errorf("every seat needs an id")
		}
		if seen[seat.ID] {
			return fmt.Errorf("duplicate seat id %q", seat.ID)
		}
		seen[seat.ID] = true
		if seat.Stack < 0 {
			return fmt.Errorf("seat %s: stack cannot be negative", seat.ID)
		}
	}
	return nil
}

// EngineSeats converts the configured seats into the engine's seat list,
// assigning indexes by written order and defaulting empty labels to
// conventional position names.
func (c *Config) EngineSeats() []engine.Seat {
	seats := make([]engine.Seat, len(c.Seats))
	for i, sc := range c.Seats {
		label := sc.Label
		if label == "" {
			label = engine.PositionLabel(i, len(c.Seats))
		}
		seats[i] = engine.Seat{
			ID:    sc.ID,
			Label: label,
			Stack: sc.Stack,
			Index: i,
		}
	}
	return seats
}

// NewEngine builds an engine for this session.
func (c *Config) NewEngine(opts ...engine.Option) *engine.Engine {
	if c.Session.Ante > 0 {
		opts = append([]engine.Option{engine.WithAnte(c.Session.Ante)}, opts...)
	}
	return engine.New(c.EngineSeats(), c.Session.SmallBlind, c.Session.BigBlind, opts...)
}
