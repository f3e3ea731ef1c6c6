package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/app/apperr"
	"backoffice/internal/app/logger"
	"backoffice/internal/app/model"
	"backoffice/internal/app/storage"

	"github.com/google/uuid"
)

// storage.WithdrawalRepository interface implementation
var _ storage.WithdrawalRepository = (*WithdrawalRepository)(nil)

type WithdrawalRepository struct {
	db *sql.DB
}

func (r *WithdrawalRepository) LoggerComponent() string {
	return "WithdrawalRepository"
}

func NewWithdrawalRepository(db *sql.DB) (*WithdrawalRepository, error) {
	s := &WithdrawalRepository{
		db: db,
	}
	return s, nil
}

// Withdrawals denormalize the phone onto the row itself, so lookups bypass
// the profile join; the join below only resolves the display name.
const withdrawalColumns = `w.id, w.user_id, coalesce(p.full_name, ''), w.phone, w.amount, w.status, w.bank_name, w.iban, w.created_at`

func (r *WithdrawalRepository) scanRow(row interface {
	Scan(dest ...interface{}) error
}) (*model.Transaction, error) {
	m := &model.Transaction{Direction: model.DirectionWithdrawal}
	err := row.Scan(&m.ID, &m.UserID, &m.UserName, &m.UserPhone, &m.Amount, &m.RawStatus, &m.BankName, &m.IBAN, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Read implementation of interface storage.WithdrawalRepository
func (r *WithdrawalRepository) Read(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	const SQL = `
		SELECT ` + withdrawalColumns + `
		FROM withdrawals w
		LEFT JOIN profiles p ON p.id = w.user_id
		WHERE w.id=$1
`
	m, err := r.scanRow(r.db.QueryRowContext(ctx, SQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select: %w", err)
	}

	return m, nil
}

// LatestByPhone implementation of interface storage.WithdrawalRepository
func (r *WithdrawalRepository) LatestByPhone(ctx context.Context, phone string, rawStatus string, day *time.Time) (*model.Transaction, error) {
	const SQL = `
		SELECT ` + withdrawalColumns + `
		FROM withdrawals w
		LEFT JOIN profiles p ON p.id = w.user_id
		WHERE w.phone=$1 AND lower(w.status)=lower($2)
		ORDER BY w.created_at DESC
		LIMIT 1
`
	const sqlByDay = `
		SELECT ` + withdrawalColumns + `
		FROM withdrawals w
		LEFT JOIN profiles p ON p.id = w.user_id
		WHERE w.phone=$1 AND lower(w.status)=lower($2) AND w.created_at BETWEEN $3 AND $4
		ORDER BY w.created_at DESC
		LIMIT 1
`
	var row *sql.Row
	if day != nil {
		start, end := model.DayWindow(*day)
		row = r.db.QueryRowContext(ctx, sqlByDay, phone, rawStatus, start, end)
	} else {
		row = r.db.QueryRowContext(ctx, SQL, phone, rawStatus)
	}

	m, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select: %w", err)
	}

	return m, nil
}

// Recent implementation of interface storage.WithdrawalRepository
func (r *WithdrawalRepository) Recent(ctx context.Context, statusFilter string, limit int) ([]*model.Transaction, error) {
	l := logger.Ctx(ctx).With().Str("method", "Recent").Logger()

	const SQL = `
		SELECT ` + withdrawalColumns + `
		FROM withdrawals w
		LEFT JOIN profiles p ON p.id = w.user_id
		ORDER BY w.created_at DESC
		LIMIT $1
`
	const sqlByStatus = `
		SELECT ` + withdrawalColumns + `
		FROM withdrawals w
		LEFT JOIN profiles p ON p.id = w.user_id
		WHERE lower(w.status)=lower($1)
		ORDER BY w.created_at DESC
		LIMIT $2
`
	var (
		rows *sql.Rows
		err  error
	)
	if statusFilter == storage.FilterAll {
		rows, err = r.db.QueryContext(ctx, SQL, limit)
	} else {
		rows, err = r.db.QueryContext(ctx, sqlByStatus, statusFilter, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	res := make([]*model.Transaction, 0, limit)
	for rows.Next() {
		m, err := r.scanRow(rows)
		if err != nil {
			l.Debug().Err(err).Send()
			return nil, fmt.Errorf("scan: %w", err)
		}
		res = append(res, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return res, nil
}

// UpdateStatus implementation of interface storage.WithdrawalRepository
func (r *WithdrawalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, prev, next string) error {
	const SQL = `
		UPDATE withdrawals
		SET status=$1
		WHERE id=$2 AND lower(status)=lower($3)
`

	res, err := r.db.ExecContext(ctx, SQL, next, id, prev)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if n == 0 {
		if _, err := r.Read(ctx, id); errors.Is(err, apperr.ErrNotFound) {
			return apperr.ErrNotFound
		}
		return apperr.ErrStaleStatus
	}

	return nil
}
