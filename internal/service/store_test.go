package service

import (
	"encoding/json"
	"fmt"
	"testing"

	"cardbot/internal/domain"
	"cardbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, cards []domain.Card) (*CollectionStore, *testutil.RecordingSink) {
	t.Helper()
	reader := new(testutil.MockCollectionReader)
	reader.On("ReadCollection").Return(cards, cards != nil)

	sink := &testutil.RecordingSink{}
	store := LoadStore(reader, sink, testutil.NewTestLogger())

	n := 0
	store.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return store, sink
}

func TestLoadStore(t *testing.T) {
	stored := []domain.Card{testutil.NewTestCard("1", "Cat", "پشیلە")}

	tests := []struct {
		name          string
		mockCards     []domain.Card
		mockOK        bool
		expectedCards []domain.Card
	}{
		{
			name:          "stored cards",
			mockCards:     stored,
			mockOK:        true,
			expectedCards: stored,
		},
		{
			name:          "nothing stored",
			mockCards:     nil,
			mockOK:        false,
			expectedCards: domain.SeedCards(),
		},
		{
			name:          "empty collection stored",
			mockCards:     []domain.Card{},
			mockOK:        true,
			expectedCards: domain.SeedCards(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := new(testutil.MockCollectionReader)
			reader.On("ReadCollection").Return(tt.mockCards, tt.mockOK)

			sink := &testutil.RecordingSink{}
			store := LoadStore(reader, sink, testutil.NewTestLogger())

			assert.Equal(t, tt.expectedCards, store.Snapshot())
			assert.Equal(t, uint64(0), store.Version())
			// Loading alone writes nothing
			assert.Equal(t, 0, sink.Count())
			reader.AssertExpectations(t)
		})
	}
}

func TestCollectionStore_Add(t *testing.T) {
	store, sink := newTestStore(t, nil)

	card := store.Add(domain.NewCard{English: "Cat", Kurdish: "X"})

	assert.Equal(t, "id-1", card.ID)
	assert.Equal(t, 3, store.Len())
	assert.Equal(t, card, store.Snapshot()[2])
	assert.Equal(t, 1, sink.Count())
	assert.Equal(t, store.Snapshot(), sink.Last())
	assert.Equal(t, uint64(1), store.Version())
}

func TestCollectionStore_AddAllowsDuplicateText(t *testing.T) {
	store, _ := newTestStore(t, nil)

	a := store.Add(domain.NewCard{English: "Hello", Kurdish: "سڵاو"})
	b := store.Add(domain.NewCard{English: "", Kurdish: ""})

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 4, store.Len())
}

func TestCollectionStore_AddUniqueIDs(t *testing.T) {
	reader := new(testutil.MockCollectionReader)
	reader.On("ReadCollection").Return(nil, false)
	store := LoadStore(reader, &testutil.RecordingSink{}, testutil.NewTestLogger())

	seen := map[string]bool{}
	for _, c := range store.Snapshot() {
		seen[c.ID] = true
	}
	for i := 0; i < 1000; i++ {
		card := store.Add(domain.NewCard{English: "w", Kurdish: "w"})
		require.NotEmpty(t, card.ID)
		require.False(t, seen[card.ID], "duplicate id %s", card.ID)
		seen[card.ID] = true
	}
	assert.Len(t, seen, 1002)
}

func TestCollectionStore_Edit(t *testing.T) {
	tests := []struct {
		name          string
		id            string
		expectedFound bool
		expectedCards []domain.Card
	}{
		{
			name:          "existing card keeps its position",
			id:            "abc",
			expectedFound: true,
			expectedCards: []domain.Card{
				testutil.NewTestCard("abc", "Hi", "سڵاو!"),
				testutil.NewTestCard("def", "Goodbye", "خواحافیز"),
			},
		},
		{
			name:          "unknown id is a no-op",
			id:            "zzz",
			expectedFound: false,
			expectedCards: domain.SeedCards(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, sink := newTestStore(t, nil)

			found := store.Edit(tt.id, "Hi", "سڵاو!")

			assert.Equal(t, tt.expectedFound, found)
			assert.Equal(t, tt.expectedCards, store.Snapshot())
			// Synced either way
			assert.Equal(t, 1, sink.Count())
		})
	}
}

func TestCollectionStore_Remove(t *testing.T) {
	store, sink := newTestStore(t, nil)

	assert.True(t, store.Remove("abc"))
	assert.Equal(t, []domain.Card{testutil.NewTestCard("def", "Goodbye", "خواحافیز")}, store.Snapshot())
	version := store.Version()

	// Second remove of the same id changes nothing
	assert.False(t, store.Remove("abc"))
	assert.Equal(t, []domain.Card{testutil.NewTestCard("def", "Goodbye", "خواحافیز")}, store.Snapshot())
	assert.Equal(t, version, store.Version())
	assert.Equal(t, 2, sink.Count())
	assert.Equal(t, store.Snapshot(), sink.Last())
}

func TestCollectionStore_RemoveDoesNotAliasSnapshots(t *testing.T) {
	store, _ := newTestStore(t, []domain.Card{
		testutil.NewTestCard("1", "a", ""),
		testutil.NewTestCard("2", "b", ""),
		testutil.NewTestCard("3", "c", ""),
	})
	before := store.Snapshot()

	store.Remove("1")

	assert.Equal(t, "1", before[0].ID)
	assert.Equal(t, []string{"2", "3"}, ids(store.Snapshot()))
}

func TestCollectionStore_ReplaceAll(t *testing.T) {
	store, sink := newTestStore(t, nil)
	imported := []domain.Card{
		testutil.NewTestCard("z", "Zebra", "گۆرەخەر"),
		testutil.NewTestCard("a", "Apple", "سێو"),
	}

	store.ReplaceAll(imported)
	imported[0].English = "mutated"

	assert.Equal(t, []string{"z", "a"}, ids(store.Snapshot()))
	assert.Equal(t, "Zebra", store.Snapshot()[0].English)
	assert.Equal(t, 1, sink.Count())
}

func TestCollectionStore_ReplayMatchesDirectConstruction(t *testing.T) {
	store, _ := newTestStore(t, nil)

	store.Add(domain.NewCard{English: "Cat", Kurdish: "پشیلە"})
	store.Add(domain.NewCard{English: "Dog", Kurdish: "سەگ"})
	store.Edit("abc", "Hi", "سڵاو")
	store.Remove("def")
	store.Edit("id-2", "Dog", "سەگ!")
	store.Remove("missing")
	store.Add(domain.NewCard{English: "Sun", Kurdish: "خۆر"})

	expected := []domain.Card{
		testutil.NewTestCard("abc", "Hi", "سڵاو"),
		testutil.NewTestCard("id-1", "Cat", "پشیلە"),
		testutil.NewTestCard("id-2", "Dog", "سەگ!"),
		testutil.NewTestCard("id-3", "Sun", "خۆر"),
	}
	assert.Equal(t, expected, store.Snapshot())
}

func TestCollectionStore_Get(t *testing.T) {
	store, _ := newTestStore(t, nil)

	card, ok := store.Get("def")
	assert.True(t, ok)
	assert.Equal(t, "Goodbye", card.English)

	_, ok = store.Get("nope")
	assert.False(t, ok)
}

func TestCollectionStore_SnapshotIsReadOnlyCopy(t *testing.T) {
	store, _ := newTestStore(t, nil)

	snap := store.Snapshot()
	snap[0].English = "changed"

	assert.Equal(t, "Hello", store.Snapshot()[0].English)
}

func TestCollectionStore_Export(t *testing.T) {
	store, _ := newTestStore(t, nil)

	raw, err := store.Export()
	require.NoError(t, err)

	var decoded []domain.Card
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, domain.SeedCards(), decoded)
}

// Seed loaded with nothing persisted, then one add: the slot holds three
// cards with the new one last.
func TestCollectionStore_PersistsAfterAdd(t *testing.T) {
	slots := testutil.NewMemorySlots()
	logger := testutil.NewTestLogger()
	persistence := NewPersistence(slots, "cardsData", logger)
	syncer := NewSyncer(persistence, logger)
	defer syncer.Close()

	store := LoadStore(persistence, syncer, logger)
	store.Add(domain.NewCard{English: "Cat", Kurdish: "X"})
	syncer.Flush()

	raw, err := slots.Get("cardsData")
	require.NoError(t, err)

	var stored []domain.Card
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Len(t, stored, 3)
	assert.Equal(t, "Cat", stored[2].English)
	assert.Equal(t, "X", stored[2].Kurdish)
	assert.NotEmpty(t, stored[2].ID)
	assert.NotEqual(t, stored[0].ID, stored[2].ID)
	assert.NotEqual(t, stored[1].ID, stored[2].ID)

	// A restart reads the same collection back
	reloaded := LoadStore(persistence, syncer, logger)
	assert.Equal(t, store.Snapshot(), reloaded.Snapshot())
}

func TestCollectionStore_WriteFailureKeepsMemoryState(t *testing.T) {
	slots := testutil.NewMemorySlots()
	slots.PutErr = fmt.Errorf("quota exceeded")
	logger := testutil.NewTestLogger()
	persistence := NewPersistence(slots, "cardsData", logger)
	syncer := NewSyncer(persistence, logger)
	defer syncer.Close()

	store := LoadStore(persistence, syncer, logger)
	store.Add(domain.NewCard{English: "Cat", Kurdish: "X"})
	syncer.Flush()

	assert.Equal(t, 3, store.Len())
	assert.Error(t, syncer.LastError())
	assert.Equal(t, 1, slots.Puts())
}

func TestCollectionStore_CorruptStoredValueFallsBackToSeed(t *testing.T) {
	slots := testutil.NewMemorySlots()
	slots.Set("cardsData", "not json")
	logger := testutil.NewTestLogger()

	store := LoadStore(NewPersistence(slots, "cardsData", logger), &testutil.RecordingSink{}, logger)

	assert.Equal(t, domain.SeedCards(), store.Snapshot())
}

func ids(cards []domain.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}
