package core

import (
	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	ReportID ID
	RunID    ID
)

func (id ReportID) String() string { return ID(id).String() }
func (id RunID) String() string    { return ID(id).String() }

// NewReportID creates a fresh identifier for an analysis report
func NewReportID() ReportID { return ReportID(NewID()) }

// NewRunID creates a fresh identifier for a simulation run
func NewRunID() RunID { return RunID(NewID()) }
