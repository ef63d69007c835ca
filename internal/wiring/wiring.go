// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/wheelhouse/internal/adapters/config"
	_ "go.trai.ch/wheelhouse/internal/adapters/fs"
	_ "go.trai.ch/wheelhouse/internal/adapters/logger"
	_ "go.trai.ch/wheelhouse/internal/adapters/shell"
	_ "go.trai.ch/wheelhouse/internal/adapters/telemetry"
	_ "go.trai.ch/wheelhouse/internal/adapters/telemetry/linear"
	// Register app nodes.
	_ "go.trai.ch/wheelhouse/internal/app"
)
