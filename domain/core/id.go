package core

import (
	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// documentNamespace scopes name-based document identifiers.
var documentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:scopereport:document"))

// NewUUID creates a time-ordered UUID v7, falling back to v4 if the clock
// source fails
func NewUUID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// DocumentID derives a stable identifier from a document title, so the same
// report always carries the same identifier.
func DocumentID(title string) ID {
	return ID(uuid.NewSHA1(documentNamespace, []byte(title)).String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}
