package receipt

import (
	"time"

	"github.com/shopspring/decimal"
)

type RenderRequest struct {
	TransactionID string           `json:"transaction_id"`
	Direction     string           `json:"direction"`
	UserName      string           `json:"user_name,omitempty"`
	UserPhone     string           `json:"user_phone,omitempty"`
	Amount        decimal.Decimal  `json:"amount"`
	NetPayout     *decimal.Decimal `json:"net_payout,omitempty"`
	BankName      string           `json:"bank_name,omitempty"`
	IBAN          string           `json:"iban,omitempty"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
}

type RenderResponse struct {
	DocumentURL string `json:"document_url"`
}
