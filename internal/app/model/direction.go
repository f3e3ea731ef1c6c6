package model

import (
	"fmt"
	"strings"
)

// Direction selects which backend resource a transaction lives in and which
// raw status vocabulary applies to it.
type Direction string

const (
	DirectionDeposit    Direction = "DEPOSIT"
	DirectionWithdrawal Direction = "WITHDRAWAL"
)

// ParseDirection accepts the values used in routes and request bodies.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEPOSIT", "DEPOSITS":
		return DirectionDeposit, nil
	case "WITHDRAWAL", "WITHDRAWALS":
		return DirectionWithdrawal, nil
	}

	return "", fmt.Errorf("unknown direction %q", s)
}
