package testutil

import (
	"sync"

	"cardbot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestCard creates a test card
func NewTestCard(id, english, kurdish string) domain.Card {
	return domain.Card{
		ID:      id,
		English: english,
		Kurdish: kurdish,
	}
}

// MemorySlots is an in-memory repository.SlotRepository
type MemorySlots struct {
	mu     sync.Mutex
	values map[string][]byte
	// PutErr is returned by Put when set
	PutErr error
	puts   int
}

// NewMemorySlots creates an empty slot store
func NewMemorySlots() *MemorySlots {
	return &MemorySlots{values: map[string][]byte{}}
}

func (m *MemorySlots) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *MemorySlots) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.PutErr != nil {
		return m.PutErr
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Set stores value directly, bypassing PutErr
func (m *MemorySlots) Set(key string, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = []byte(value)
}

// Puts returns the number of Put calls
func (m *MemorySlots) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

// RecordingSink keeps every snapshot handed to it
type RecordingSink struct {
	mu        sync.Mutex
	Snapshots [][]domain.Card
}

func (r *RecordingSink) Sync(cards []domain.Card) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Snapshots = append(r.Snapshots, cards)
}

// Last returns the latest snapshot
func (r *RecordingSink) Last() []domain.Card {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Snapshots) == 0 {
		return nil
	}
	return r.Snapshots[len(r.Snapshots)-1]
}

// Count returns the number of snapshots received
func (r *RecordingSink) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Snapshots)
}

// SequenceIntN returns the given values in turn and panics on an out of
// range value
func SequenceIntN(values ...int) func(n int) int {
	i := 0
	return func(n int) int {
		v := values[i%len(values)]
		i++
		if v < 0 || v >= n {
			panic("SequenceIntN: value out of range")
		}
		return v
	}
}
