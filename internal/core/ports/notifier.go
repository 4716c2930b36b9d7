package ports

import "go.trai.ch/smartmate/internal/core/domain"

// Notifier shows transient messages to the user.
//
//go:generate mockgen -source=notifier.go -destination=mocks/mock_notifier.go -package=mocks
type Notifier interface {
	Notify(n domain.Notification)
	// Redirect sends notifications to fn instead of the terminal until the
	// returned restore func is called.
	Redirect(fn func(domain.Notification)) (restore func())
}
