package repository

// SlotRepository is a durable key-value store holding one value per key
type SlotRepository interface {
	// Get returns nil, nil when the key was never written
	Get(key string) ([]byte, error)
	// Put overwrites the value stored under key in a single step
	Put(key string, value []byte) error
}
