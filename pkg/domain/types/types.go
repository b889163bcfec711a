package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// GuestID represents a guest row identifier assigned by the guest-list backend
type GuestID string

// String returns the string representation
func (id GuestID) String() string {
	return string(id)
}

// Validate checks if the guest ID is non-empty
func (id GuestID) Validate() error {
	if id == "" {
		return goerr.New("guest ID is empty")
	}
	return nil
}

// GroupID represents the identifier shared by all members of one invitation party
type GroupID string

// String returns the string representation
func (id GroupID) String() string {
	return string(id)
}

// SubmissionID represents an attendance submission record identifier
type SubmissionID string

// String returns the string representation
func (id SubmissionID) String() string {
	return string(id)
}

// NewSubmissionID creates a new SubmissionID using UUID v7 so IDs sort by creation time
func NewSubmissionID() SubmissionID {
	id, err := uuid.NewV7()
	if err != nil {
		return SubmissionID(uuid.New().String())
	}
	return SubmissionID(id.String())
}

// Source identifies which surface submitted an attendance change
type Source string

const (
	SourceWeb    Source = "web"
	SourceManage Source = "manage"
	SourceCLI    Source = "cli"
)

// String returns the string representation
func (s Source) String() string {
	return string(s)
}
