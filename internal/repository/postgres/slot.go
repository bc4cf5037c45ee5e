package postgres

import (
	"database/sql"
	"fmt"
)

// SlotRepo implements repository.SlotRepository on the kv_store table
type SlotRepo struct {
	db *sql.DB
}

// NewSlotRepo creates a new slot repository
func NewSlotRepo(db *sql.DB) *SlotRepo {
	return &SlotRepo{db: db}
}

// Get returns the value stored under key
func (r *SlotRepo) Get(key string) ([]byte, error) {
	var value string
	query := `SELECT value FROM kv_store WHERE key = $1`
	err := r.db.QueryRow(query, key).Scan(&value)

	if err == sql.ErrNoRows {
		// Never written
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", key, err)
	}

	return []byte(value), nil
}

// Put overwrites the value stored under key
func (r *SlotRepo) Put(key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := r.db.Exec(query, key, string(value)); err != nil {
		return fmt.Errorf("write slot %q: %w", key, err)
	}
	return nil
}
