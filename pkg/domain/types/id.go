package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// ReportID is a unique identifier for a bias report
type ReportID string

// NewReportID generates a new time-ordered report ID
func NewReportID() ReportID {
	return ReportID(uuid.Must(uuid.NewV7()).String())
}

// Validate checks if the ReportID is a well-formed UUID
func (id ReportID) Validate() error {
	if id == "" {
		return goerr.New("report ID cannot be empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return goerr.Wrap(err, "report ID must be a UUID", goerr.V("id", id))
	}
	return nil
}

// String returns the string representation of the ReportID
func (id ReportID) String() string {
	return string(id)
}

// UserID is an opaque identifier for the user who submitted content.
// It is issued by the session collaborator and never interpreted here.
type UserID string

// Validate checks if the UserID is non-empty
func (id UserID) Validate() error {
	if id == "" {
		return goerr.New("user ID cannot be empty")
	}
	return nil
}

// String returns the string representation of the UserID
func (id UserID) String() string {
	return string(id)
}
