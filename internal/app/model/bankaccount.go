package model

import (
	"time"

	"github.com/google/uuid"
)

// BankAccount is a company account shown to users as a deposit destination.
type BankAccount struct {
	ID        uuid.UUID `json:"id"`
	BankName  string    `json:"bank_name"`
	IBAN      string    `json:"iban"`
	Holder    string    `json:"holder"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
