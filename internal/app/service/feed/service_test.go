package feed

import (
	"context"
	"strings"
	"testing"
	"time"

	"backoffice/internal/app/apperr"
	"backoffice/internal/app/model"
	"backoffice/internal/app/storage"

	"github.com/google/uuid"
)

type stubRepo struct {
	rows   []*model.Transaction
	recent func(statusFilter string, limit int) ([]*model.Transaction, error)
}

func (s *stubRepo) Read(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	return nil, apperr.ErrNotFound
}

func (s *stubRepo) Recent(ctx context.Context, statusFilter string, limit int) ([]*model.Transaction, error) {
	if s.recent != nil {
		return s.recent(statusFilter, limit)
	}

	res := make([]*model.Transaction, 0)
	for _, m := range s.rows {
		if statusFilter != storage.FilterAll && !strings.EqualFold(m.RawStatus, statusFilter) {
			continue
		}
		cp := *m
		res = append(res, &cp)
	}
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (s *stubRepo) UpdateStatus(ctx context.Context, id uuid.UUID, prev, next string) error {
	return apperr.ErrNotFound
}

func (s *stubRepo) LatestByUser(ctx context.Context, userID uuid.UUID, rawStatus string, day *time.Time) (*model.Transaction, error) {
	return nil, apperr.ErrNotFound
}

func (s *stubRepo) LatestByPhone(ctx context.Context, phone string, rawStatus string, day *time.Time) (*model.Transaction, error) {
	return nil, apperr.ErrNotFound
}

func row(d model.Direction, raw string) *model.Transaction {
	return &model.Transaction{ID: uuid.New(), Direction: d, RawStatus: raw, CreatedAt: time.Now()}
}

func TestListDefaults(t *testing.T) {
	deposits := &stubRepo{rows: []*model.Transaction{row(model.DirectionDeposit, "pendente")}}

	var gotStatus string
	var gotLimit int
	deposits.recent = func(statusFilter string, limit int) ([]*model.Transaction, error) {
		gotStatus, gotLimit = statusFilter, limit
		return nil, nil
	}

	svc, err := New(deposits, &stubRepo{}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.List(context.Background(), View{Direction: model.DirectionDeposit}); err != nil {
		t.Fatal(err)
	}

	if gotStatus != storage.FilterAll {
		t.Errorf("status filter = %q, want %q", gotStatus, storage.FilterAll)
	}
	if gotLimit != DefaultLimit {
		t.Errorf("limit = %d, want %d", gotLimit, DefaultLimit)
	}
}

func TestListFiltersAndDecorates(t *testing.T) {
	deposits := &stubRepo{rows: []*model.Transaction{
		row(model.DirectionDeposit, "pendente"),
		row(model.DirectionDeposit, "recarregado"),
	}}

	svc, err := New(deposits, &stubRepo{}, nil)
	if err != nil {
		t.Fatal(err)
	}

	rows, err := svc.List(context.Background(), View{Direction: model.DirectionDeposit, Status: "pendente"})
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Status != model.StatusPending {
		t.Errorf("row not decorated: status = %s", rows[0].Status)
	}
}

func TestListStaleResponseGuard(t *testing.T) {
	slowStarted := make(chan struct{})
	slowRelease := make(chan struct{})

	pendingRow := row(model.DirectionDeposit, "pendente")
	allRow := row(model.DirectionDeposit, "recarregado")

	deposits := &stubRepo{}
	deposits.recent = func(statusFilter string, limit int) ([]*model.Transaction, error) {
		if statusFilter == "pendente" {
			close(slowStarted)
			<-slowRelease
			return []*model.Transaction{pendingRow}, nil
		}
		return []*model.Transaction{allRow}, nil
	}

	svc, err := New(deposits, &stubRepo{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	slowDone := make(chan error, 1)
	go func() {
		_, err := svc.List(ctx, View{Direction: model.DirectionDeposit, Status: "pendente"})
		slowDone <- err
	}()

	<-slowStarted

	// A newer view supersedes the in-flight query.
	if _, err := svc.List(ctx, View{Direction: model.DirectionDeposit, Status: storage.FilterAll}); err != nil {
		t.Fatal(err)
	}

	close(slowRelease)
	if err := <-slowDone; err != nil {
		t.Fatal(err)
	}

	v, rows := svc.Snapshot()
	if v.Status != storage.FilterAll {
		t.Errorf("snapshot view = %+v, want the newer ALL view", v)
	}
	if len(rows) != 1 || rows[0].ID != allRow.ID {
		t.Errorf("stale response overwrote the newer snapshot: %+v", rows)
	}
}

func TestRefreshIgnoresOtherDirection(t *testing.T) {
	calls := 0
	deposits := &stubRepo{}
	deposits.recent = func(statusFilter string, limit int) ([]*model.Transaction, error) {
		calls++
		return nil, nil
	}

	svc, err := New(deposits, &stubRepo{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, err := svc.List(ctx, View{Direction: model.DirectionDeposit}); err != nil {
		t.Fatal(err)
	}
	calls = 0

	if err := svc.Refresh(ctx, model.DirectionWithdrawal); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Error("refresh for the other direction must not re-query")
	}

	if err := svc.Refresh(ctx, model.DirectionDeposit); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("refresh for the shown direction: %d queries, want 1", calls)
	}
}

func TestRunStopsWithoutBroker(t *testing.T) {
	svc, err := New(&stubRepo{}, &stubRepo{}, nil)
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		svc.Run(context.Background())
		close(done)
	}()

	svc.Stop()
	svc.Stop() // idempotent

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
}
