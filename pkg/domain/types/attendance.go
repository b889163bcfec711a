package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Attendance is the RSVP status of a single guest. The value is the exact
// string the guest-list backend stores in its Attendance column.
type Attendance string

const (
	AttendanceGoing      Attendance = "Going"
	AttendanceNotGoing   Attendance = "Not Going"
	AttendanceMaybe      Attendance = "Maybe"
	AttendanceNoResponse Attendance = ""
)

// NoResponseLabel is the display label of AttendanceNoResponse
const NoResponseLabel = "No Response"

// AllAttendances lists the vocabulary in display order
var AllAttendances = []Attendance{
	AttendanceGoing,
	AttendanceNotGoing,
	AttendanceMaybe,
	AttendanceNoResponse,
}

// String returns the backend representation
func (a Attendance) String() string {
	return string(a)
}

// Label returns the display label. Unknown values are returned verbatim.
func (a Attendance) Label() string {
	if a == AttendanceNoResponse {
		return NoResponseLabel
	}
	return string(a)
}

// IsValid checks if the attendance is part of the fixed vocabulary
func (a Attendance) IsValid() bool {
	switch a {
	case AttendanceGoing, AttendanceNotGoing, AttendanceMaybe, AttendanceNoResponse:
		return true
	default:
		return false
	}
}

// Normalize trims surrounding whitespace the backend sometimes keeps in cells
func (a Attendance) Normalize() Attendance {
	return Attendance(strings.TrimSpace(string(a)))
}

// ParseAttendance converts user input into an Attendance. It accepts the
// backend strings, the display label and the short CLI aliases. Blank input
// is rejected; clearing an answer must name "No Response".
func ParseAttendance(s string) (Attendance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "going", "yes":
		return AttendanceGoing, nil
	case "not going", "not-going", "notgoing", "no":
		return AttendanceNotGoing, nil
	case "maybe":
		return AttendanceMaybe, nil
	case "no response", "no-response", "none":
		return AttendanceNoResponse, nil
	default:
		return "", goerr.New("unknown attendance", goerr.V("attendance", s))
	}
}
