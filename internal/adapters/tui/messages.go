package tui

import (
	"go.trai.ch/smartmate/internal/adapters/telemetry"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/engine/query"
)

// MsgTasks carries a new state of the task list query.
type MsgTasks struct {
	State query.State[[]domain.Task]
}

// MsgToast shows a notification in the status bar until it expires.
type MsgToast struct {
	Notification domain.Notification
}

// MsgRequest reports a finished API request.
type MsgRequest struct {
	Event telemetry.RequestEvent
}

// MsgTheme switches the palette. Theme is light or dark.
type MsgTheme struct {
	Theme domain.Theme
}

type msgToastExpired struct {
	seq int
}
