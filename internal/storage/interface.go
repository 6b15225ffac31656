package storage

// Storage defines the interface for persisting the generated document
type Storage interface {
	// SaveSpec stores the rendered JSON document, replacing any previous one
	SaveSpec(data []byte) error

	// Utility
	Close() error
}
