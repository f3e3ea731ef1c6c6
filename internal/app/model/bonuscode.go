package model

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/ferdypruis/go-luhn"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BonusCode is a redeemable credit voucher. Codes are numeric and end in a
// Luhn check digit so entry typos fail locally instead of querying storage.
type BonusCode struct {
	ID         uuid.UUID       `json:"id"`
	Code       string          `json:"code"`
	Amount     decimal.Decimal `json:"amount"`
	Active     bool            `json:"active"`
	RedeemedBy *uuid.UUID      `json:"redeemed_by,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// BonusCodeLength counts digits including the trailing check digit.
const BonusCodeLength = 12

var bonusCodePattern = regexp.MustCompile(fmt.Sprintf(`^[0-9]{%d}$`, BonusCodeLength))

// ValidBonusCode reports whether code has the issued shape and a correct
// check digit.
func ValidBonusCode(code string) bool {
	return bonusCodePattern.MatchString(code) && luhn.Valid(code)
}

// GenerateBonusCode produces a fresh random code passing ValidBonusCode.
func GenerateBonusCode() (string, error) {
	digits := make([]byte, 0, BonusCodeLength-1)
	for i := 0; i < BonusCodeLength-1; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("rand: %w", err)
		}
		digits = append(digits, byte('0'+n.Int64()))
	}

	body := string(digits)
	for c := '0'; c <= '9'; c++ {
		if code := body + string(c); luhn.Valid(code) {
			return code, nil
		}
	}

	// Unreachable: exactly one of the ten check digits satisfies Luhn.
	return "", fmt.Errorf("no check digit for %s", body)
}
