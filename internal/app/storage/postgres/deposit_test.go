package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"backoffice/internal/app/apperr"
	"backoffice/internal/app/model"
	"backoffice/internal/app/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

var depositCols = []string{"id", "user_id", "full_name", "phone", "amount", "status", "bank_name", "created_at"}

func newDepositRepo(t *testing.T) (*DepositRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	r, err := NewDepositRepository(db)
	if err != nil {
		t.Fatal(err)
	}

	return r, mock
}

func TestDepositRead(t *testing.T) {
	r, mock := newDepositRepo(t)
	id, userID := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM deposits d\s+JOIN profiles p ON p\.id = d\.user_id\s+WHERE d\.id=\$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(depositCols).
			AddRow(id, userID, "Ana Cardoso", "912345678", "1000", "pendente", "BAI", time.Now()))

	m, err := r.Read(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}

	if m.Direction != model.DirectionDeposit {
		t.Errorf("direction = %s", m.Direction)
	}
	if m.UserName != "Ana Cardoso" || m.RawStatus != "pendente" {
		t.Errorf("unexpected row: %+v", m)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDepositReadNotFound(t *testing.T) {
	r, mock := newDepositRepo(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM deposits d`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(depositCols))

	if _, err := r.Read(context.Background(), id); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDepositLatestByUser(t *testing.T) {
	r, mock := newDepositRepo(t)
	id, userID := uuid.New(), uuid.New()

	mock.ExpectQuery(`WHERE d\.user_id=\$1 AND lower\(d\.status\)=lower\(\$2\)\s+ORDER BY d\.created_at DESC\s+LIMIT 1`).
		WithArgs(userID, "pendente").
		WillReturnRows(sqlmock.NewRows(depositCols).
			AddRow(id, userID, "Ana Cardoso", "912345678", "1000", "pendente", "BAI", time.Now()))

	m, err := r.LatestByUser(context.Background(), userID, "pendente", nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != id {
		t.Errorf("id = %s, want %s", m.ID, id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDepositLatestByUserOnDay(t *testing.T) {
	r, mock := newDepositRepo(t)
	id, userID := uuid.New(), uuid.New()

	day := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	start, end := model.DayWindow(day)

	mock.ExpectQuery(`AND d\.created_at BETWEEN \$3 AND \$4\s+ORDER BY d\.created_at DESC\s+LIMIT 1`).
		WithArgs(userID, "pendente", start, end).
		WillReturnRows(sqlmock.NewRows(depositCols).
			AddRow(id, userID, "Ana Cardoso", "912345678", "1000", "pendente", "BAI", day))

	m, err := r.LatestByUser(context.Background(), userID, "pendente", &day)
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != id {
		t.Errorf("id = %s, want %s", m.ID, id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDepositRecentFiltered(t *testing.T) {
	r, mock := newDepositRepo(t)
	userID := uuid.New()

	mock.ExpectQuery(`WHERE lower\(d\.status\)=lower\(\$1\)\s+ORDER BY d\.created_at DESC\s+LIMIT \$2`).
		WithArgs("pendente", 20).
		WillReturnRows(sqlmock.NewRows(depositCols).
			AddRow(uuid.New(), userID, "Ana Cardoso", "912345678", "1000", "pendente", "BAI", time.Now()).
			AddRow(uuid.New(), userID, "Ana Cardoso", "912345678", "500", "pendente", "BAI", time.Now().Add(-time.Hour)))

	rows, err := r.Recent(context.Background(), "pendente", 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDepositRecentAll(t *testing.T) {
	r, mock := newDepositRepo(t)

	mock.ExpectQuery(`FROM deposits d\s+JOIN profiles p ON p\.id = d\.user_id\s+ORDER BY d\.created_at DESC\s+LIMIT \$1`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(depositCols))

	rows, err := r.Recent(context.Background(), storage.FilterAll, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(rows))
	}
}

func TestDepositUpdateStatus(t *testing.T) {
	r, mock := newDepositRepo(t)
	id := uuid.New()

	mock.ExpectExec(`UPDATE deposits\s+SET status=\$1\s+WHERE id=\$2 AND lower\(status\)=lower\(\$3\)`).
		WithArgs("recarregado", id, "pendente").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := r.UpdateStatus(context.Background(), id, "pendente", "recarregado"); err != nil {
		t.Fatal(err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDepositUpdateStatusStale(t *testing.T) {
	r, mock := newDepositRepo(t)
	id, userID := uuid.New(), uuid.New()

	mock.ExpectExec(`UPDATE deposits`).
		WithArgs("rejeitado", id, "pendente").
		WillReturnResult(sqlmock.NewResult(0, 0))

	// The record exists under a different status, so the miss is a conflict.
	mock.ExpectQuery(`WHERE d\.id=\$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(depositCols).
			AddRow(id, userID, "Ana Cardoso", "912345678", "1000", "recarregado", "BAI", time.Now()))

	err := r.UpdateStatus(context.Background(), id, "pendente", "rejeitado")
	if !errors.Is(err, apperr.ErrStaleStatus) {
		t.Fatalf("want ErrStaleStatus, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDepositUpdateStatusNotFound(t *testing.T) {
	r, mock := newDepositRepo(t)
	id := uuid.New()

	mock.ExpectExec(`UPDATE deposits`).
		WithArgs("rejeitado", id, "pendente").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery(`WHERE d\.id=\$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(depositCols))

	err := r.UpdateStatus(context.Background(), id, "pendente", "rejeitado")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
