package service

import "cardbot/internal/domain"

// QuizState is the state of the current card
type QuizState int

const (
	// AwaitingInput waits for an answer to the current card.
	AwaitingInput QuizState = iota
	// Revealed shows feedback for the current card.
	Revealed
)

// IntN returns a random int in [0, n)
type IntN func(n int) int

// ShuffleMode selects how the swap index is drawn
type ShuffleMode int

const (
	// ShuffleUniform draws from [0, i] and yields every permutation.
	ShuffleUniform ShuffleMode = iota
	// ShuffleLegacy draws from [0, i) and yields only cyclic permutations.
	ShuffleLegacy
)

func (m ShuffleMode) String() string {
	if m == ShuffleLegacy {
		return "legacy"
	}
	return "uniform"
}

// Quiz runs one practice session over a snapshot of the collection
type Quiz struct {
	intN   IntN
	legacy bool

	cards     map[string]domain.Card
	order     []string
	position  int
	direction domain.Direction
	state     QuizState
	input     string
	score     int
	version   uint64
}

// NewQuiz creates an empty session
func NewQuiz(intN IntN, mode ShuffleMode) *Quiz {
	return &Quiz{
		intN:   intN,
		legacy: mode == ShuffleLegacy,
		cards:  map[string]domain.Card{},
	}
}

// Start begins a new session over cards. version is the store version the
// cards were taken at.
func (q *Quiz) Start(cards []domain.Card, direction domain.Direction, version uint64) {
	q.cards = make(map[string]domain.Card, len(cards))
	ids := make([]string, len(cards))
	for i, c := range cards {
		q.cards[c.ID] = c
		ids[i] = c.ID
	}

	q.order = shuffle(ids, q.intN, q.legacy)
	q.direction = direction
	q.version = version
	q.position = 0
	q.score = 0
	q.state = AwaitingInput
	q.input = ""
}

// shuffle permutes ids in place walking from the last index down to 1.
// The uniform mode draws the swap index from [0, i]. The legacy mode draws
// from [0, i), which only yields cyclic permutations.
func shuffle(ids []string, intN IntN, legacy bool) []string {
	for i := len(ids) - 1; i > 0; i-- {
		var j int
		if legacy {
			j = intN(i)
		} else {
			j = intN(i + 1)
		}
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids
}

func (q *Quiz) current() (domain.Card, bool) {
	if q.position < 0 || q.position >= len(q.order) {
		return domain.Card{}, false
	}
	c, ok := q.cards[q.order[q.position]]
	return c, ok
}

// Prompt returns the text shown for the current card. ok is false when
// there is no card.
func (q *Quiz) Prompt() (string, bool) {
	c, ok := q.current()
	if !ok {
		return "", false
	}
	return q.direction.Prompt(c), true
}

// Answer returns the expected answer for the current card
func (q *Quiz) Answer() (string, bool) {
	c, ok := q.current()
	if !ok {
		return "", false
	}
	return q.direction.Answer(c), true
}

// Submit records an answer and reveals the card. Answers are compared
// exactly. It returns false and does nothing unless the session is awaiting
// input on an existing card.
func (q *Quiz) Submit(text string) bool {
	if q.state != AwaitingInput {
		return false
	}
	answer, ok := q.Answer()
	if !ok {
		return false
	}

	q.input = text
	q.state = Revealed
	if text == answer {
		q.score++
	}
	return true
}

// Advance moves to the next card. After the last card the session restarts
// at position 0 with a zero score. It returns false and does nothing unless
// the current card is revealed.
func (q *Quiz) Advance() bool {
	if q.state != Revealed {
		return false
	}

	if q.position >= len(q.order)-1 {
		q.position = 0
		q.score = 0
	} else {
		q.position++
	}
	q.state = AwaitingInput
	q.input = ""
	return true
}

// SetDirection starts a fresh session over cards when direction differs
// from the current one. It reports whether a new session was started.
func (q *Quiz) SetDirection(cards []domain.Card, direction domain.Direction, version uint64) bool {
	if direction == q.direction {
		return false
	}
	q.Start(cards, direction, version)
	return true
}

// Score returns correct answers and the number of attempted cards. The
// current card counts as attempted once revealed.
func (q *Quiz) Score() (correct, attempted int) {
	attempted = q.position
	if q.state == Revealed {
		attempted++
	}
	return q.score, attempted
}

// Stale reports whether the session was started before the collection
// reached version.
func (q *Quiz) Stale(version uint64) bool {
	return q.version != version
}

// State returns the state of the current card
func (q *Quiz) State() QuizState { return q.state }

// Position returns the index of the current card in the order
func (q *Quiz) Position() int { return q.position }

// Direction returns the current direction
func (q *Quiz) Direction() domain.Direction { return q.direction }

// Input returns the submitted answer of the revealed card
func (q *Quiz) Input() string { return q.input }

// Len returns the number of cards in the session
func (q *Quiz) Len() int { return len(q.order) }

// Order returns a copy of the presentation order
func (q *Quiz) Order() []string {
	out := make([]string, len(q.order))
	copy(out, q.order)
	return out
}
