package rsvp

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/rsvp/pkg/domain/model"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
)

// listResponse is the body of GET ?op=list
type listResponse struct {
	Headers []string `json:"headers"`
	Rows    []row    `json:"rows"`
}

// row mirrors one spreadsheet row; keys are the sheet's column headers
type row struct {
	ID         cell `json:"ID"`
	GroupID    cell `json:"GroupId"`
	GroupName  cell `json:"GroupName"`
	Name       cell `json:"Name"`
	Attendance cell `json:"Attendance"`
	UpdatedAt  cell `json:"UpdatedAt"`
}

func (r row) toGuest() *model.Guest {
	return &model.Guest{
		ID:         types.GuestID(r.ID),
		GroupID:    types.GroupID(r.GroupID),
		GroupName:  string(r.GroupName),
		Name:       string(r.Name),
		Attendance: types.Attendance(r.Attendance),
		UpdatedAt:  string(r.UpdatedAt),
	}
}

// cell is a spreadsheet value. Sheets hand numeric IDs and dates back as
// JSON numbers and empty cells as null, so any scalar is accepted as text.
type cell string

func (c *cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*c = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return goerr.Wrap(err, "failed to decode string cell")
		}
		*c = cell(s)
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*c = cell(data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return goerr.Wrap(err, "unsupported cell value", goerr.V("raw", string(data)))
		}
		*c = cell(normalizeNumber(n))
	}
	return nil
}

// normalizeNumber renders integral floats such as 12.0 as "12"
func normalizeNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := n.Float64(); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return n.String()
}

// updatePayload is the body of the attendance POST
type updatePayload struct {
	ID      string       `json:"id"`
	Updates updateFields `json:"updates"`
}

// updateFields holds the columns to overwrite. Attendance is a pointer so an
// empty value (no response) is still sent to clear the cell.
type updateFields struct {
	Attendance *string `json:"Attendance,omitempty"`
}

func newUpdatePayload(id types.GuestID, attendance types.Attendance) updatePayload {
	value := attendance.String()
	return updatePayload{
		ID:      id.String(),
		Updates: updateFields{Attendance: &value},
	}
}
