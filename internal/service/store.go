package service

import (
	"sync"

	"cardbot/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CollectionReader loads a persisted collection
type CollectionReader interface {
	ReadCollection() ([]domain.Card, bool)
}

// SnapshotSink receives the full collection after every mutation
type SnapshotSink interface {
	Sync(cards []domain.Card)
}

// CollectionStore owns the card collection. Every mutation hands a snapshot
// of the whole collection to the sink.
type CollectionStore struct {
	mu      sync.RWMutex
	cards   []domain.Card
	version uint64

	sink   SnapshotSink
	newID  func() string
	logger *zap.Logger
}

// LoadStore reads the persisted collection, falling back to the seed cards
// when nothing usable is stored.
func LoadStore(reader CollectionReader, sink SnapshotSink, logger *zap.Logger) *CollectionStore {
	cards, ok := reader.ReadCollection()
	if !ok || len(cards) == 0 {
		logger.Info("No stored cards, using seed collection")
		cards = domain.SeedCards()
	} else {
		logger.Info("Loaded stored cards", zap.Int("cards", len(cards)))
	}

	return &CollectionStore{
		cards:  cards,
		sink:   sink,
		newID:  uuid.NewString,
		logger: logger,
	}
}

// Add appends a card with a fresh id
func (s *CollectionStore) Add(c domain.NewCard) domain.Card {
	card := domain.Card{
		ID:      s.newID(),
		English: c.English,
		Kurdish: c.Kurdish,
	}

	s.mu.Lock()
	s.cards = append(s.cards, card)
	s.commitLocked(true)
	s.mu.Unlock()

	s.logger.Debug("Card added", zap.String("card_id", card.ID))
	return card
}

// Edit replaces the text of the card with id in place. It reports whether
// the card exists.
func (s *CollectionStore) Edit(id, english, kurdish string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.cards {
		if s.cards[i].ID == id {
			s.cards[i].English = english
			s.cards[i].Kurdish = kurdish
			found = true
			break
		}
	}
	s.commitLocked(found)
	return found
}

// Remove deletes the card with id. It reports whether a card was removed.
func (s *CollectionStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.cards {
		if s.cards[i].ID == id {
			s.cards = append(s.cards[:i:i], s.cards[i+1:]...)
			found = true
			break
		}
	}
	s.commitLocked(found)
	return found
}

// ReplaceAll overwrites the whole collection
func (s *CollectionStore) ReplaceAll(cards []domain.Card) {
	s.mu.Lock()
	s.cards = domain.CloneCards(cards)
	s.commitLocked(true)
	s.mu.Unlock()

	s.logger.Info("Collection replaced", zap.Int("cards", len(cards)))
}

// Snapshot returns a copy of the collection in order
func (s *CollectionStore) Snapshot() []domain.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneCards(s.cards)
}

// Export renders the collection as the export file
func (s *CollectionStore) Export() ([]byte, error) {
	return EncodeExport(s.Snapshot())
}

// Get returns the card with id
func (s *CollectionStore) Get(id string) (domain.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cards {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Card{}, false
}

// Len returns the number of cards
func (s *CollectionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cards)
}

// Version increases with every mutation that changed the collection
func (s *CollectionStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// commitLocked hands the collection to the sink. No-op edits and removes
// are synced too.
func (s *CollectionStore) commitLocked(changed bool) {
	if changed {
		s.version++
	}
	s.sink.Sync(domain.CloneCards(s.cards))
}
