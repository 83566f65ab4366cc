package deck

import "testing"

func TestParseCard(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Card
		wantErr  bool
	}{
		{
			name:     "ace of spades",
			input:    "As",
			expected: Card{Rank: Ace, Suit: Spades},
		},
		{
			name:     "ten of diamonds",
			input:    "Td",
			expected: Card{Rank: Ten, Suit: Diamonds},
		},
		{
			name:     "lowercase",
			input:    "kh",
			expected: Card{Rank: King, Suit: Hearts},
		},
		{
			name:     "mixed case",
			input:    "qC",
			expected: Card{Rank: Queen, Suit: Clubs},
		},
		{
			name:     "deuce",
			input:    "2s",
			expected: Card{Rank: Two, Suit: Spades},
		},
		{
			name:     "surrounding whitespace",
			input:    " 9h ",
			expected: Card{Rank: Nine, Suit: Hearts},
		},
		{
			name:    "invalid rank",
			input:   "Xs",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "Ax",
			wantErr: true,
		},
		{
			name:    "too short",
			input:   "A",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, err := ParseCard(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseCard(%q) expected error, got %v", tt.input, card)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCard(%q) unexpected error: %v", tt.input, err)
			}
			if card != tt.expected {
				t.Errorf("ParseCard(%q) = %v, want %v", tt.input, card, tt.expected)
			}
		})
	}
}

func TestParseCards(t *testing.T) {
	cards, err := ParseCards("As Kd 7c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []Card{
		{Rank: Ace, Suit: Spades},
		{Rank: King, Suit: Diamonds},
		{Rank: Seven, Suit: Clubs},
	}
	if len(cards) != len(expected) {
		t.Fatalf("got %d cards, want %d", len(cards), len(expected))
	}
	for i, c := range cards {
		if c != expected[i] {
			t.Errorf("card %d = %v, want %v", i, c, expected[i])
		}
	}

	if _, err := ParseCards("As Zz"); err == nil {
		t.Error("expected error for invalid card in list")
	}
}

func TestCardRoundTrip(t *testing.T) {
	for rank := Two; rank <= Ace; rank++ {
		for suit := Spades; suit <= Clubs; suit++ {
			card := NewCard(rank, suit)
			parsed, err := ParseCard(card.String())
			if err != nil {
				t.Fatalf("ParseCard(%q): %v", card.String(), err)
			}
			if parsed != card {
				t.Errorf("round trip %v -> %q -> %v", card, card.String(), parsed)
			}
		}
	}
}

func TestCardDisplay(t *testing.T) {
	card := NewCard(Ace, Spades)
	if card.Display() != "A♠" {
		t.Errorf("Display() = %q, want A♠", card.Display())
	}
	if !NewCard(Ten, Hearts).IsRed() {
		t.Error("Th should be red")
	}
	if NewCard(Ten, Spades).IsRed() {
		t.Error("Ts should not be red")
	}
}
