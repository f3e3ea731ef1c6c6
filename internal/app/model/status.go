package model

import "strings"

// Status is the normalized tri-state view over the raw backend literals.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusSettled  Status = "SETTLED"
	StatusRejected Status = "REJECTED"
)

// Raw status literals as stored by the backend. The vocabulary differs by
// direction: deposits settle as "recarregado", withdrawals as "aprovado" or
// "concluido". "aprovado" also appears on historical deposit rows and is
// tolerated on read for both directions.
const (
	RawStatusPending   = "pendente"
	RawStatusRejected  = "rejeitado"
	RawStatusApproved  = "aprovado"
	RawStatusRecharged = "recarregado"
	RawStatusCompleted = "concluido"
)

var statusByLiteral = map[Direction]map[string]Status{
	DirectionDeposit: {
		RawStatusPending:   StatusPending,
		RawStatusRejected:  StatusRejected,
		RawStatusRecharged: StatusSettled,
		RawStatusApproved:  StatusSettled,
	},
	DirectionWithdrawal: {
		RawStatusPending:   StatusPending,
		RawStatusRejected:  StatusRejected,
		RawStatusApproved:  StatusSettled,
		RawStatusCompleted: StatusSettled,
	},
}

// Literals an operator may assign during review. Read-side synonyms
// ("aprovado" on deposits, "concluido" on withdrawals) are deliberately not
// assignable, so new rows use one spelling per direction.
var assignableLiterals = map[Direction][]string{
	DirectionDeposit:    {RawStatusPending, RawStatusRecharged, RawStatusRejected},
	DirectionWithdrawal: {RawStatusPending, RawStatusApproved, RawStatusRejected},
}

// NormalizeStatus maps a raw backend literal to the tri-state status.
// Comparison is case-insensitive. Unrecognized literals (empty string
// included) normalize to PENDING: an unknown state must never be mistaken
// for a settlement.
func NormalizeStatus(raw string, d Direction) Status {
	literals, ok := statusByLiteral[d]
	if !ok {
		return StatusPending
	}

	if s, ok := literals[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}

	return StatusPending
}

// AssignableLiterals returns the raw literals an operator may write for the
// given direction, in presentation order.
func AssignableLiterals(d Direction) []string {
	src := assignableLiterals[d]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// CanAssign reports whether raw is a literal an operator may write for the
// given direction.
func CanAssign(d Direction, raw string) bool {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, l := range assignableLiterals[d] {
		if l == raw {
			return true
		}
	}

	return false
}
