package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// payoutRate is what remains of a withdrawal after the fixed 10% service
// fee. The net payout is a display/quoting value only and is never written
// back to the amount column.
var payoutRate = decimal.New(90, -2)

// Transaction is the unified review view over deposit and withdrawal rows.
type Transaction struct {
	ID        uuid.UUID
	Direction Direction
	UserID    uuid.UUID
	UserName  string
	UserPhone string
	Amount    decimal.Decimal
	RawStatus string
	Status    Status
	CreatedAt time.Time

	// Payout destination, withdrawals only. Deposits carry BankName alone.
	BankName string
	IBAN     string

	// Derived, withdrawals only.
	NetPayout decimal.NullDecimal
}

// NetPayout computes the withdrawal payout after the service fee.
func NetPayout(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(payoutRate)
}

// Decorate fills the derived fields from the stored ones.
func (t *Transaction) Decorate() {
	t.Status = NormalizeStatus(t.RawStatus, t.Direction)
	if t.Direction == DirectionWithdrawal {
		t.NetPayout = decimal.NullDecimal{Decimal: NetPayout(t.Amount), Valid: true}
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (t Transaction) MarshalJSON() ([]byte, error) {
	o := struct {
		ID        uuid.UUID        `json:"id"`
		Direction Direction        `json:"direction"`
		UserName  string           `json:"user_name,omitempty"`
		UserPhone string           `json:"user_phone,omitempty"`
		Amount    decimal.Decimal  `json:"amount"`
		RawStatus string           `json:"raw_status"`
		Status    Status           `json:"status"`
		CreatedAt time.Time        `json:"created_at"`
		BankName  string           `json:"bank_name,omitempty"`
		IBAN      string           `json:"iban,omitempty"`
		NetPayout *decimal.Decimal `json:"net_payout,omitempty"`
	}{
		ID:        t.ID,
		Direction: t.Direction,
		UserName:  t.UserName,
		UserPhone: t.UserPhone,
		Amount:    t.Amount,
		RawStatus: t.RawStatus,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
		BankName:  t.BankName,
		IBAN:      t.IBAN,
	}

	if t.NetPayout.Valid {
		o.NetPayout = &t.NetPayout.Decimal
	}

	return json.Marshal(o)
}

// DayWindow returns the closed interval covering the full local day of t,
// 00:00:00 through 23:59:59. Used by date-filtered transaction lookups.
func DayWindow(t time.Time) (start, end time.Time) {
	y, m, d := t.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	end = time.Date(y, m, d, 23, 59, 59, 0, t.Location())
	return start, end
}
