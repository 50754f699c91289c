// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/sho/internal/adapters/config"
	_ "go.trai.ch/sho/internal/adapters/export"
	_ "go.trai.ch/sho/internal/adapters/extractor"
	_ "go.trai.ch/sho/internal/adapters/fs"
	_ "go.trai.ch/sho/internal/adapters/logger"
	_ "go.trai.ch/sho/internal/adapters/notes"
	_ "go.trai.ch/sho/internal/adapters/shell"
	_ "go.trai.ch/sho/internal/adapters/store"
	_ "go.trai.ch/sho/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/sho/internal/app"
)
