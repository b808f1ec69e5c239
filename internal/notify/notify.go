// Package notify shows desktop notifications for userlist events that the
// user would otherwise miss, such as a failed save after the editor closed.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/matt0x6f/metadata-editor/internal/events"
	"github.com/matt0x6f/metadata-editor/internal/logger"
)

// Notifier subscribes to the event bus and raises desktop notifications
type Notifier struct {
	enabled bool
	send    func(title, message string) error
}

// New creates a notifier. A disabled notifier ignores every event.
func New(enabled bool) *Notifier {
	return &Notifier{
		enabled: enabled,
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// Subscribe registers the notifier for the events it reports
func (n *Notifier) Subscribe(bus *events.EventBus) {
	bus.Subscribe(events.EventUserlistSaveFailed, n)
}

// OnEvent implements events.Subscriber
func (n *Notifier) OnEvent(event events.Event) {
	if !n.enabled {
		return
	}

	var title, message string
	switch event.Type {
	case events.EventUserlistSaveFailed:
		title = "Metadata not saved"
		message = fmt.Sprintf("Your changes to %v could not be saved: %v", event.Data["plugin"], event.Data["error"])
	default:
		return
	}

	if err := n.send(title, message); err != nil {
		logger.Log.Warn().Err(err).Str("event", event.Type).Msg("Failed to show notification")
	}
}
