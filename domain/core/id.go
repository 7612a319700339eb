package core

import (
	"github.com/google/uuid"
)

// ID identifies an analysis request or report
type ID string

// NewID returns a time-ordered UUID v7 identifier, falling back to v4 when
// the system entropy source cannot produce one.
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

func (id ID) String() string { return string(id) }

// IsEmpty reports whether the ID is unset
func (id ID) IsEmpty() bool { return id == "" }
