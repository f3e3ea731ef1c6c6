package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"backoffice/internal/app/apperr"
	"backoffice/internal/app/model"
	"backoffice/internal/app/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	pg "github.com/lib/pq"
)

// storage.BankAccountRepository interface implementation
var _ storage.BankAccountRepository = (*BankAccountRepository)(nil)

type BankAccountRepository struct {
	db *sql.DB
}

func (r *BankAccountRepository) LoggerComponent() string {
	return "BankAccountRepository"
}

func NewBankAccountRepository(db *sql.DB) (*BankAccountRepository, error) {
	s := &BankAccountRepository{
		db: db,
	}
	return s, nil
}

// All implementation of interface storage.BankAccountRepository
func (r *BankAccountRepository) All(ctx context.Context) ([]*model.BankAccount, error) {
	const SQL = `
		SELECT id, bank_name, iban, holder, active, created_at
		FROM bank_accounts
		ORDER BY created_at DESC
`
	rows, err := r.db.QueryContext(ctx, SQL)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	res := make([]*model.BankAccount, 0)
	for rows.Next() {
		m := &model.BankAccount{}
		if err := rows.Scan(&m.ID, &m.BankName, &m.IBAN, &m.Holder, &m.Active, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		res = append(res, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return res, nil
}

// Create implementation of interface storage.BankAccountRepository
func (r *BankAccountRepository) Create(ctx context.Context, m *model.BankAccount) (*model.BankAccount, error) {
	const SQL = `
		INSERT INTO bank_accounts (bank_name, iban, holder, active)
		VALUES ($1, $2, $3, true)
		RETURNING id, created_at
`

	err := r.db.QueryRowContext(ctx, SQL, m.BankName, m.IBAN, m.Holder).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		if pgErr, ok := err.(*pg.Error); ok {
			if pgerrcode.IsIntegrityConstraintViolation(string(pgErr.Code)) {
				return nil, apperr.ErrConflict
			}
		}

		return nil, fmt.Errorf("insert: %w", err)
	}

	m.Active = true

	return m, nil
}

// Update implementation of interface storage.BankAccountRepository
func (r *BankAccountRepository) Update(ctx context.Context, m *model.BankAccount) (*model.BankAccount, error) {
	const SQL = `
		UPDATE bank_accounts
		SET bank_name=$1, iban=$2, holder=$3, active=$4
		WHERE id=$5
`

	res, err := r.db.ExecContext(ctx, SQL, m.BankName, m.IBAN, m.Holder, m.Active, m.ID)
	if err != nil {
		if pgErr, ok := err.(*pg.Error); ok {
			if pgerrcode.IsIntegrityConstraintViolation(string(pgErr.Code)) {
				return nil, apperr.ErrConflict
			}
		}

		return nil, fmt.Errorf("update: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, apperr.ErrNotFound
	}

	return m, nil
}

// Deactivate implementation of interface storage.BankAccountRepository
func (r *BankAccountRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return deactivateByID(ctx, r.db, "bank_accounts", id)
}
