package domain

// Card is one vocabulary entry. The JSON keys are the persisted and exported
// format and must not change.
type Card struct {
	ID      string `json:"id"`
	English string `json:"english"`
	Kurdish string `json:"kurdish"`
}

// NewCard is a card that has not been assigned an id yet
type NewCard struct {
	English string
	Kurdish string
}

// SeedCards returns the built-in collection used when nothing is persisted
func SeedCards() []Card {
	return []Card{
		{ID: "abc", English: "Hello", Kurdish: "سڵاو"},
		{ID: "def", English: "Goodbye", Kurdish: "خواحافیز"},
	}
}

// CloneCards returns a copy of cards that shares no backing array
func CloneCards(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

// Direction selects which side of a card is the prompt
type Direction int

const (
	// Forward prompts with English and expects Kurdish.
	Forward Direction = iota
	// Reverse prompts with Kurdish and expects English.
	Reverse
)

// Toggle returns the opposite direction
func (d Direction) Toggle() Direction {
	if d == Forward {
		return Reverse
	}
	return Forward
}

func (d Direction) String() string {
	if d == Reverse {
		return "kurdish → english"
	}
	return "english → kurdish"
}

// Prompt returns the side of c shown to the user
func (d Direction) Prompt(c Card) string {
	if d == Reverse {
		return c.Kurdish
	}
	return c.English
}

// Answer returns the side of c the user has to type
func (d Direction) Answer(c Card) string {
	if d == Reverse {
		return c.English
	}
	return c.Kurdish
}
