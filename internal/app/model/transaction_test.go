package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNetPayout(t *testing.T) {
	for _, amount := range []int64{0, 1, 100, 1000, 2000, 99999} {
		a := decimal.NewFromInt(amount)
		net := NetPayout(a)

		if net.GreaterThan(a) {
			t.Errorf("net payout %s exceeds amount %s", net, a)
		}

		fee := a.Sub(net)
		wantFee := a.Mul(decimal.New(10, -2))
		if !fee.Equal(wantFee) {
			t.Errorf("amount %s: fee %s, want %s", a, fee, wantFee)
		}
	}
}

func TestNetPayoutWithdrawalExample(t *testing.T) {
	got := NetPayout(decimal.NewFromInt(2000))
	if !got.Equal(decimal.NewFromInt(1800)) {
		t.Errorf("net payout of 2000 = %s, want 1800", got)
	}
}

func TestDecorate(t *testing.T) {
	d := Transaction{Direction: DirectionDeposit, RawStatus: "pendente", Amount: decimal.NewFromInt(1000)}
	d.Decorate()
	if d.Status != StatusPending {
		t.Errorf("deposit status = %s, want PENDING", d.Status)
	}
	if d.NetPayout.Valid {
		t.Error("deposits must not carry a net payout")
	}

	w := Transaction{Direction: DirectionWithdrawal, RawStatus: "aprovado", Amount: decimal.NewFromInt(2000)}
	w.Decorate()
	if w.Status != StatusSettled {
		t.Errorf("withdrawal status = %s, want SETTLED", w.Status)
	}
	if !w.NetPayout.Valid || !w.NetPayout.Decimal.Equal(decimal.NewFromInt(1800)) {
		t.Errorf("withdrawal net payout = %+v, want 1800", w.NetPayout)
	}
}

func TestTransactionMarshalJSON(t *testing.T) {
	d := Transaction{Direction: DirectionDeposit, RawStatus: "pendente", Amount: decimal.NewFromInt(1000)}
	d.Decorate()

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "net_payout") {
		t.Errorf("deposit json must not expose net_payout: %s", b)
	}

	w := Transaction{Direction: DirectionWithdrawal, RawStatus: "pendente", Amount: decimal.NewFromInt(2000), IBAN: "AO06000000000000000000000"}
	w.Decorate()

	b, err = json.Marshal(w)
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"net_payout", "iban"} {
		if !strings.Contains(string(b), field) {
			t.Errorf("withdrawal json missing %s: %s", field, b)
		}
	}
}

func TestDayWindow(t *testing.T) {
	day := time.Date(2024, 3, 15, 14, 30, 45, 0, time.Local)
	start, end := DayWindow(day)

	if want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local); !start.Equal(want) {
		t.Errorf("start = %s, want %s", start, want)
	}
	if want := time.Date(2024, 3, 15, 23, 59, 59, 0, time.Local); !end.Equal(want) {
		t.Errorf("end = %s, want %s", end, want)
	}

	// The prior day's last millisecond stays outside the window.
	prior := time.Date(2024, 3, 14, 23, 59, 59, 999_000_000, time.Local)
	if !prior.Before(start) {
		t.Error("prior-day record must fall before the window start")
	}
}
