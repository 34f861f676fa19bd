package ports

import "go.trai.ch/graphcache/internal/core/domain"

// ResultStore persists the component results of named sessions below a workspace root.
// Every session is encoded independently, so one can be read without the others.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ResultStore interface {
	// Get reads back the results of a session.
	// Returns nil, nil if the session does not exist.
	Get(root, session string) ([]domain.DetachedComponentResult, error)

	// Put replaces the stored results of a session.
	Put(root, session string, results []domain.ComponentResult) error
}
