// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/graphcache/internal/adapters/cas"
	_ "go.trai.ch/graphcache/internal/adapters/config"
	_ "go.trai.ch/graphcache/internal/adapters/export"
	_ "go.trai.ch/graphcache/internal/adapters/logger"
	// Register app nodes.
	_ "go.trai.ch/graphcache/internal/app"
)
