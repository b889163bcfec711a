package model

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/secmon-lab/rsvp/pkg/domain/types"
)

// Guest is one invitee row mirrored from the guest-list backend
type Guest struct {
	ID         types.GuestID    `json:"id" yaml:"id"`
	GroupID    types.GroupID    `json:"groupId,omitempty" yaml:"groupId,omitempty"`
	GroupName  string           `json:"groupName,omitempty" yaml:"groupName,omitempty"`
	Name       string           `json:"name" yaml:"name"`
	Attendance types.Attendance `json:"attendance" yaml:"attendance"`
	// UpdatedAt is kept as the backend sent it; it is advisory and only used for display
	UpdatedAt string `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// GroupKey returns the party identifier, treating a guest without GroupID as a party of one
func (g *Guest) GroupKey() types.GroupID {
	if g.GroupID != "" {
		return g.GroupID
	}
	return types.GroupID(g.ID)
}

// GroupLabel returns the party display name, falling back to the guest's own name
func (g *Guest) GroupLabel() string {
	if label := strings.TrimSpace(g.GroupName); label != "" {
		return label
	}
	return g.Name
}

// UpdatedTime parses UpdatedAt. The zero time is returned when it is empty or unparsable.
func (g *Guest) UpdatedTime() time.Time {
	if g.UpdatedAt == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, g.UpdatedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// UpdatedRelative renders UpdatedAt relative to now, such as "5 minutes ago"
// or "in 2 hours". An empty value gives "" and an unparsable one is returned
// unchanged.
func (g *Guest) UpdatedRelative(now time.Time) string {
	if g.UpdatedAt == "" {
		return ""
	}
	t := g.UpdatedTime()
	if t.IsZero() {
		return g.UpdatedAt
	}

	minutes := roundHalfUp(t.Sub(now).Minutes())
	if absInt(minutes) < 60 {
		return relativeText(minutes, "minute")
	}
	hours := roundHalfUp(float64(minutes) / 60)
	if absInt(hours) < 24 {
		return relativeText(hours, "hour")
	}
	return relativeText(roundHalfUp(float64(hours)/24), "day")
}

func relativeText(n int, unit string) string {
	switch {
	case n == 0:
		return "this " + unit
	case unit == "day" && n == -1:
		return "yesterday"
	case unit == "day" && n == 1:
		return "tomorrow"
	}

	count := absInt(n)
	label := unit
	if count != 1 {
		label += "s"
	}
	if n < 0 {
		return fmt.Sprintf("%d %s ago", count, label)
	}
	return fmt.Sprintf("in %d %s", count, label)
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// GuestList is the full guest list as returned by one fetch
type GuestList struct {
	Headers []string `json:"headers" yaml:"headers"`
	Guests  []*Guest `json:"guests" yaml:"guests"`
}

// Find returns the guest with the given ID, or nil
func (l *GuestList) Find(id types.GuestID) *Guest {
	for _, g := range l.Guests {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// UpdateResult is the backend acknowledgement of an attendance update
type UpdateResult struct {
	OK bool `json:"ok"`
}
