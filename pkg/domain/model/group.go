package model

import (
	"strings"

	"github.com/secmon-lab/rsvp/pkg/domain/types"
	"golang.org/x/text/cases"
)

// Group is an invitation party: the guests sharing a GroupKey
type Group struct {
	ID      types.GroupID `json:"id" yaml:"id"`
	Name    string        `json:"name" yaml:"name"`
	Members []*Guest      `json:"members" yaml:"members"`
}

// GroupGuests partitions guests by GroupKey. Groups are ordered by first
// appearance and members keep list order; every guest lands in exactly one group.
func GroupGuests(guests []*Guest) []*Group {
	index := make(map[types.GroupID]*Group)
	var groups []*Group

	for _, g := range guests {
		key := g.GroupKey()
		group, ok := index[key]
		if !ok {
			group = &Group{ID: key, Name: g.GroupLabel()}
			index[key] = group
			groups = append(groups, group)
		}
		group.Members = append(group.Members, g)
	}

	return groups
}

// FindGroup returns the group with the given ID, or nil
func FindGroup(groups []*Group, id types.GroupID) *Group {
	for _, g := range groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// Matches reports whether the party label or any member name contains query
func (g *Group) Matches(query string) bool {
	q := foldString(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(foldString(g.Name), q) {
		return true
	}
	for _, m := range g.Members {
		if strings.Contains(foldString(m.Name), q) {
			return true
		}
	}
	return false
}

func foldString(s string) string {
	return cases.Fold().String(s)
}
