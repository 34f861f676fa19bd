// Package ports defines the interfaces the application core depends on.
package ports

import "go.trai.ch/graphcache/internal/core/domain"

// ResolutionLoader loads the resolved components of one dependency resolution.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolution_loader.go -destination=mocks/mock_resolution_loader.go -package=mocks
type ResolutionLoader interface {
	// Load reads the resolution file at path. Result ids are unique within the returned slice.
	Load(path string) ([]domain.ComponentResult, error)
}
