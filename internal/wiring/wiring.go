// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/forge/internal/adapters/analysis"
	_ "go.trai.ch/forge/internal/adapters/artefacts"
	_ "go.trai.ch/forge/internal/adapters/config"
	_ "go.trai.ch/forge/internal/adapters/exec"
	_ "go.trai.ch/forge/internal/adapters/fs"
	_ "go.trai.ch/forge/internal/adapters/logger"
	_ "go.trai.ch/forge/internal/adapters/telemetry"
	// Register tool registry and app nodes.
	_ "go.trai.ch/forge/internal/app"
	_ "go.trai.ch/forge/internal/tools"
)
