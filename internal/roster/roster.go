// Package roster keeps the display names of room members as seen in a stream
// of membership events.
package roster

import (
	"strings"
	"sync"

	"matrix-render/internal/event"
)

// Directory maps user IDs to display names. The zero value is not usable;
// call New.
type Directory struct {
	mu    sync.RWMutex
	names map[string]string
}

func New() *Directory {
	return &Directory{names: map[string]string{}}
}

// Apply updates the directory from a membership event. Join and invite events
// carrying a displayname set it; other transitions keep the last known name so
// that later lines about the user still resolve.
func (d *Directory) Apply(evt *event.MemberEvent) {
	if d == nil || evt == nil || evt.StateKey == "" {
		return
	}
	switch evt.Content.Membership {
	case event.MembershipJoin, event.MembershipInvite:
	default:
		return
	}
	if evt.Content.Displayname == nil {
		return
	}
	name := strings.TrimSpace(*evt.Content.Displayname)
	d.mu.Lock()
	defer d.mu.Unlock()
	if name == "" {
		delete(d.names, evt.StateKey)
		return
	}
	d.names[evt.StateKey] = name
}

// Displayname returns the known name of userID, or userID itself.
func (d *Directory) Displayname(userID string) string {
	if d == nil {
		return userID
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if name, ok := d.names[userID]; ok {
		return name
	}
	return userID
}

// Len reports how many users have a known display name.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.names)
}
