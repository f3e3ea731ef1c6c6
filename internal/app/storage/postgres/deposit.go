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

// storage.DepositRepository interface implementation
var _ storage.DepositRepository = (*DepositRepository)(nil)

type DepositRepository struct {
	db *sql.DB
}

func (r *DepositRepository) LoggerComponent() string {
	return "DepositRepository"
}

func NewDepositRepository(db *sql.DB) (*DepositRepository, error) {
	s := &DepositRepository{
		db: db,
	}
	return s, nil
}

const depositColumns = `d.id, d.user_id, p.full_name, p.phone, d.amount, d.status, d.bank_name, d.created_at`

func (r *DepositRepository) scanRow(row interface {
	Scan(dest ...interface{}) error
}) (*model.Transaction, error) {
	m := &model.Transaction{Direction: model.DirectionDeposit}
	err := row.Scan(&m.ID, &m.UserID, &m.UserName, &m.UserPhone, &m.Amount, &m.RawStatus, &m.BankName, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Read implementation of interface storage.DepositRepository
func (r *DepositRepository) Read(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	const SQL = `
		SELECT ` + depositColumns + `
		FROM deposits d
		JOIN profiles p ON p.id = d.user_id
		WHERE d.id=$1
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

// LatestByUser implementation of interface storage.DepositRepository
func (r *DepositRepository) LatestByUser(ctx context.Context, userID uuid.UUID, rawStatus string, day *time.Time) (*model.Transaction, error) {
	const SQL = `
		SELECT ` + depositColumns + `
		FROM deposits d
		JOIN profiles p ON p.id = d.user_id
		WHERE d.user_id=$1 AND lower(d.status)=lower($2)
		ORDER BY d.created_at DESC
		LIMIT 1
`
	const sqlByDay = `
		SELECT ` + depositColumns + `
		FROM deposits d
		JOIN profiles p ON p.id = d.user_id
		WHERE d.user_id=$1 AND lower(d.status)=lower($2) AND d.created_at BETWEEN $3 AND $4
		ORDER BY d.created_at DESC
		LIMIT 1
`
	var row *sql.Row
	if day != nil {
		start, end := model.DayWindow(*day)
		row = r.db.QueryRowContext(ctx, sqlByDay, userID, rawStatus, start, end)
	} else {
		row = r.db.QueryRowContext(ctx, SQL, userID, rawStatus)
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

// Recent implementation of interface storage.DepositRepository
func (r *DepositRepository) Recent(ctx context.Context, statusFilter string, limit int) ([]*model.Transaction, error) {
	l := logger.Ctx(ctx).With().Str("method", "Recent").Logger()

	const SQL = `
		SELECT ` + depositColumns + `
		FROM deposits d
		JOIN profiles p ON p.id = d.user_id
		ORDER BY d.created_at DESC
		LIMIT $1
`
	const sqlByStatus = `
		SELECT ` + depositColumns + `
		FROM deposits d
		JOIN profiles p ON p.id = d.user_id
		WHERE lower(d.status)=lower($1)
		ORDER BY d.created_at DESC
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

// UpdateStatus implementation of interface storage.DepositRepository
func (r *DepositRepository) UpdateStatus(ctx context.Context, id uuid.UUID, prev, next string) error {
	const SQL = `
		UPDATE deposits
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
