// Package contact holds the scanned-card directory: contacts imported from a
// decoded card payload or picked from the device directory, with substring
// search over the collection.
package contact

import (
	"time"

	"github.com/google/uuid"
)

// Contact is one directory entry. Phone and email are optional; a contact
// imported from a raw scan payload carries only a name.
type Contact struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
