package model_test

import (
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/rsvp/pkg/domain/model"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
)

func sampleGuests() []*model.Guest {
	return []*model.Guest{
		{ID: "1", GroupID: "g1", GroupName: "The Smiths", Name: "Alice Smith", Attendance: types.AttendanceGoing},
		{ID: "2", GroupID: "g2", Name: "Bob Jones", Attendance: types.AttendanceNotGoing},
		{ID: "3", GroupID: "g1", GroupName: "The Smiths", Name: "Carol Smith"},
		{ID: "4", Name: "Dave Solo", Attendance: types.AttendanceMaybe},
		{ID: "5", GroupID: "g2", GroupName: "  ", Name: "Erin Jones", Attendance: types.Attendance("Plus One")},
	}
}

func TestGroupGuests(t *testing.T) {
	groups := model.GroupGuests(sampleGuests())
	gt.Equal(t, len(groups), 3)

	gt.Equal(t, groups[0].ID, types.GroupID("g1"))
	gt.Equal(t, groups[0].Name, "The Smiths")
	gt.Equal(t, len(groups[0].Members), 2)
	gt.Equal(t, groups[0].Members[0].ID, types.GuestID("1"))
	gt.Equal(t, groups[0].Members[1].ID, types.GuestID("3"))

	// Blank GroupName falls back to the first member's name
	gt.Equal(t, groups[1].ID, types.GroupID("g2"))
	gt.Equal(t, groups[1].Name, "Bob Jones")

	// Missing GroupId makes a party of one keyed by the guest ID
	gt.Equal(t, groups[2].ID, types.GroupID("4"))
	gt.Equal(t, groups[2].Name, "Dave Solo")
}

func TestGroupGuestsPartitionsExactly(t *testing.T) {
	for n := 0; n < 50; n += 7 {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			var guests []*model.Guest
			for i := 0; i < n; i++ {
				g := &model.Guest{ID: types.GuestID(fmt.Sprintf("id-%d", i)), Name: fmt.Sprintf("Guest %d", i)}
				if i%3 != 0 {
					g.GroupID = types.GroupID(fmt.Sprintf("g-%d", i%5))
				}
				guests = append(guests, g)
			}

			seen := make(map[types.GuestID]int)
			for _, group := range model.GroupGuests(guests) {
				for _, m := range group.Members {
					gt.Equal(t, m.GroupKey(), group.ID)
					seen[m.ID]++
				}
			}

			gt.Equal(t, len(seen), n)
			for _, count := range seen {
				gt.Equal(t, count, 1)
			}
		})
	}
}

func TestGroupMatches(t *testing.T) {
	groups := model.GroupGuests(sampleGuests())

	gt.True(t, groups[0].Matches("smiths"))
	gt.True(t, groups[0].Matches("CAROL"))
	gt.False(t, groups[0].Matches("jones"))
	gt.True(t, groups[1].Matches("erin"))
}

func TestFindGroup(t *testing.T) {
	groups := model.GroupGuests(sampleGuests())
	gt.V(t, model.FindGroup(groups, "g2")).NotNil()
	gt.Nil(t, model.FindGroup(groups, "missing"))
}
