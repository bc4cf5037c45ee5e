package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"cardbot/internal/domain"
	"cardbot/internal/repository"

	"go.uber.org/zap"
)

// ExportFileName is the name of the downloadable export
const ExportFileName = "cards.json"

var (
	// ErrNoFile is returned when an import is submitted without a file
	ErrNoFile = errors.New("no file selected")
	// ErrInvalidImport is returned when an import file is not a card list
	ErrInvalidImport = errors.New("invalid import file")
	// ErrStaleImport marks an import that finished after its screen closed
	ErrStaleImport = errors.New("import screen closed")
)

// Persistence stores the card collection in one slot of a SlotRepository
type Persistence struct {
	slots  repository.SlotRepository
	key    string
	logger *zap.Logger
}

// NewPersistence creates a persistence adapter writing under key
func NewPersistence(slots repository.SlotRepository, key string, logger *zap.Logger) *Persistence {
	return &Persistence{
		slots:  slots,
		key:    key,
		logger: logger,
	}
}

// ReadCollection returns the stored cards. ok is false when the slot is
// absent, unreadable or does not hold a card list.
func (p *Persistence) ReadCollection() (cards []domain.Card, ok bool) {
	raw, err := p.slots.Get(p.key)
	if err != nil {
		p.logger.Warn("Failed to read stored cards", zap.String("key", p.key), zap.Error(err))
		return nil, false
	}
	if raw == nil {
		return nil, false
	}

	cards, err = decodeCards(raw)
	if err != nil {
		p.logger.Warn("Stored cards are not valid", zap.String("key", p.key), zap.Error(err))
		return nil, false
	}
	return cards, true
}

// WriteCollection overwrites the slot with cards
func (p *Persistence) WriteCollection(cards []domain.Card) error {
	if cards == nil {
		cards = []domain.Card{}
	}
	raw, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("encode cards: %w", err)
	}
	return p.slots.Put(p.key, raw)
}

// EncodeExport renders cards as the indented JSON export file
func EncodeExport(cards []domain.Card) ([]byte, error) {
	if cards == nil {
		cards = []domain.Card{}
	}
	raw, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return raw, nil
}

// DecodeImport reads a whole export file. Reads beyond maxBytes are rejected.
func DecodeImport(r io.Reader, maxBytes int64) ([]domain.Card, error) {
	if r == nil {
		return nil, ErrNoFile
	}

	// One byte past the limit tells an oversized file from one that fits
	limit := maxBytes
	if limit < math.MaxInt64 {
		limit++
	}
	raw, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	if int64(len(raw)) > maxBytes {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrInvalidImport, maxBytes)
	}

	cards, err := decodeCards(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	return cards, nil
}

// decodeCards accepts only an array of objects carrying string id, english
// and kurdish fields with unique ids. Extra fields are ignored.
func decodeCards(raw []byte) ([]domain.Card, error) {
	var records []map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("not a JSON array of objects: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after JSON array")
	}
	if records == nil {
		return nil, errors.New("expected a JSON array, got null")
	}

	cards := make([]domain.Card, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("entry %d: expected an object", i)
		}
		var card domain.Card
		fields := []struct {
			name string
			dst  *string
		}{
			{"id", &card.ID},
			{"english", &card.English},
			{"kurdish", &card.Kurdish},
		}
		for _, f := range fields {
			value, ok := rec[f.name]
			if !ok {
				return nil, fmt.Errorf("entry %d: missing %q", i, f.name)
			}
			if bytes.Equal(bytes.TrimSpace(value), []byte("null")) || json.Unmarshal(value, f.dst) != nil {
				return nil, fmt.Errorf("entry %d: %q must be a string", i, f.name)
			}
		}
		if _, dup := seen[card.ID]; dup {
			return nil, fmt.Errorf("entry %d: duplicate id %q", i, card.ID)
		}
		seen[card.ID] = struct{}{}
		cards = append(cards, card)
	}
	return cards, nil
}
