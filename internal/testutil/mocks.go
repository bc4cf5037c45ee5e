package testutil

import (
	"cardbot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockSlotRepository is a mock for SlotRepository
type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) Get(key string) ([]byte, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSlotRepository) Put(key string, value []byte) error {
	args := m.Called(key, value)
	return args.Error(0)
}

// MockCollectionWriter is a mock for CollectionWriter
type MockCollectionWriter struct {
	mock.Mock
}

func (m *MockCollectionWriter) WriteCollection(cards []domain.Card) error {
	args := m.Called(cards)
	return args.Error(0)
}

// MockCollectionReader is a mock for CollectionReader
type MockCollectionReader struct {
	mock.Mock
}

func (m *MockCollectionReader) ReadCollection() ([]domain.Card, bool) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]domain.Card), args.Bool(1)
}
