// Package notify abstracts desktop notifications so the scheduler never
// depends on how they render.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// Notifier delivers a single user-facing notification.
type Notifier interface {
	Notify(title, body, iconPath string) error
}

// Desktop sends notifications through the host's native notification system.
type Desktop struct{}

func NewDesktop(appName string) *Desktop {
	if appName != "" {
		beeep.AppName = appName
	}
	return &Desktop{}
}

func (d *Desktop) Notify(title, body, iconPath string) error {
	if err := beeep.Notify(title, body, iconPath); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}

// Discard drops every notification. Used headless and in tests.
type Discard struct{}

func (Discard) Notify(title, body, iconPath string) error { return nil }
