package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a platform user as seen by the back office. Transactions hold
// a weak reference to it; display name and phone on a transaction are
// denormalized copies resolved at query time.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}
