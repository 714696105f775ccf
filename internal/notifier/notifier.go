package notifier

import (
	"github.com/pfrederiksen/conf-tracker/internal/conference"
)

// Notifier defines the interface for announcing newly stored conferences
type Notifier interface {
	// Notify posts announcements for the given records
	Notify(records []*conference.Record) error
}
