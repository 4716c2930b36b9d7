// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/smartmate/internal/adapters/api"
	_ "go.trai.ch/smartmate/internal/adapters/config"
	_ "go.trai.ch/smartmate/internal/adapters/fakeapi"
	_ "go.trai.ch/smartmate/internal/adapters/httpclient"
	_ "go.trai.ch/smartmate/internal/adapters/logger"
	_ "go.trai.ch/smartmate/internal/adapters/notify"
	_ "go.trai.ch/smartmate/internal/adapters/prefs"
	_ "go.trai.ch/smartmate/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/smartmate/internal/app"
	_ "go.trai.ch/smartmate/internal/engine/query"
)
