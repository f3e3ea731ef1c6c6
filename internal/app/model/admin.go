package model

import "github.com/google/uuid"

// Admin is a back-office operator account.
type Admin struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
}
