package model

import (
	"time"

	"github.com/google/uuid"
)

// Todo is a single list entry. Across all todos the positions always form
// the dense range 0..N-1 with no gaps or duplicates.
type Todo struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
