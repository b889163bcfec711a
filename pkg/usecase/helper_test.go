package usecase_test

import (
	"context"
	"sync"

	"github.com/secmon-lab/rsvp/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/rsvp/pkg/domain/model"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
)

func testGuests() []*model.Guest {
	return []*model.Guest{
		{ID: "1", GroupID: "g1", GroupName: "The Smiths", Name: "Alice Smith", Attendance: types.AttendanceGoing},
		{ID: "2", GroupID: "g2", GroupName: "Jones Family", Name: "Bob Jones", Attendance: types.AttendanceNotGoing},
		{ID: "3", GroupID: "g1", GroupName: "The Smiths", Name: "Carol Smith"},
		{ID: "4", Name: "Dave Solo", Attendance: types.AttendanceMaybe},
		{ID: "5", GroupID: "g2", GroupName: "Jones Family", Name: "Erin Jones"},
	}
}

// newBackend returns a mock client that keeps attendance written through
// UpdateAttendance, like the real sheet does.
func newBackend() *mocks.GuestListClientMock {
	var mu sync.Mutex
	guests := testGuests()

	return &mocks.GuestListClientMock{
		FetchGuestListFunc: func(ctx context.Context) (*model.GuestList, error) {
			mu.Lock()
			defer mu.Unlock()
			list := &model.GuestList{Headers: []string{"ID", "GroupId", "GroupName", "Name", "Attendance", "UpdatedAt"}}
			for _, g := range guests {
				c := *g
				list.Guests = append(list.Guests, &c)
			}
			return list, nil
		},
		UpdateAttendanceFunc: func(ctx context.Context, id types.GuestID, attendance types.Attendance) (*model.UpdateResult, error) {
			mu.Lock()
			defer mu.Unlock()
			for _, g := range guests {
				if g.ID == id {
					g.Attendance = attendance
				}
			}
			return &model.UpdateResult{OK: true}, nil
		},
	}
}
