package model

import (
	"strings"

	"github.com/secmon-lab/rsvp/pkg/domain/types"
)

// GuestFilter selects guests for the management view
type GuestFilter struct {
	// Query matches guest name or party label, case-insensitively
	Query string
	// Attendance, when set, keeps only guests with exactly this attendance
	Attendance *types.Attendance
}

// Match reports whether a guest passes the filter
func (f GuestFilter) Match(g *Guest) bool {
	if q := foldString(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(foldString(g.Name), q) &&
			!strings.Contains(foldString(strings.TrimSpace(g.GroupName)), q) {
			return false
		}
	}

	if f.Attendance != nil && g.Attendance.Normalize() != *f.Attendance {
		return false
	}

	return true
}

// Apply returns the guests passing the filter, in list order
func (f GuestFilter) Apply(guests []*Guest) []*Guest {
	result := make([]*Guest, 0, len(guests))
	for _, g := range guests {
		if f.Match(g) {
			result = append(result, g)
		}
	}
	return result
}

// AttendanceCounts summarizes a guest list by attendance
type AttendanceCounts struct {
	All        int `json:"all" yaml:"all"`
	Going      int `json:"going" yaml:"going"`
	NotGoing   int `json:"notGoing" yaml:"notGoing"`
	Maybe      int `json:"maybe" yaml:"maybe"`
	NoResponse int `json:"noResponse" yaml:"noResponse"`
}

// CountAttendance counts guests per attendance. Values outside the
// vocabulary only contribute to All.
func CountAttendance(guests []*Guest) AttendanceCounts {
	var c AttendanceCounts
	for _, g := range guests {
		c.All++
		switch g.Attendance.Normalize() {
		case types.AttendanceNoResponse:
			c.NoResponse++
		case types.AttendanceGoing:
			c.Going++
		case types.AttendanceNotGoing:
			c.NotGoing++
		case types.AttendanceMaybe:
			c.Maybe++
		}
	}
	return c
}
