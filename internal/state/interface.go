package state

// Interface defines the progress store contract for dependency injection and testing.
type Interface interface {
	GetProgress(key string) (*Progress, error)
	SaveProgress(p Progress)
	ListProgress(limit int) ([]Progress, error)
	DeleteProgress(key string) error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
