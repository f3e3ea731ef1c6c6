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

// storage.BonusCodeRepository interface implementation
var _ storage.BonusCodeRepository = (*BonusCodeRepository)(nil)

type BonusCodeRepository struct {
	db *sql.DB
}

func (r *BonusCodeRepository) LoggerComponent() string {
	return "BonusCodeRepository"
}

func NewBonusCodeRepository(db *sql.DB) (*BonusCodeRepository, error) {
	s := &BonusCodeRepository{
		db: db,
	}
	return s, nil
}

// All implementation of interface storage.BonusCodeRepository
func (r *BonusCodeRepository) All(ctx context.Context) ([]*model.BonusCode, error) {
	const SQL = `
		SELECT id, code, amount, active, redeemed_by, created_at
		FROM bonus_codes
		ORDER BY created_at DESC
`
	rows, err := r.db.QueryContext(ctx, SQL)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	res := make([]*model.BonusCode, 0)
	for rows.Next() {
		m := &model.BonusCode{}
		if err := rows.Scan(&m.ID, &m.Code, &m.Amount, &m.Active, &m.RedeemedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		res = append(res, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return res, nil
}

// Create implementation of interface storage.BonusCodeRepository. A code
// collision maps to apperr.ErrConflict so the issuer can regenerate.
func (r *BonusCodeRepository) Create(ctx context.Context, m *model.BonusCode) (*model.BonusCode, error) {
	const SQL = `
		INSERT INTO bonus_codes (code, amount, active)
		VALUES ($1, $2, true)
		RETURNING id, created_at
`

	err := r.db.QueryRowContext(ctx, SQL, m.Code, m.Amount).Scan(&m.ID, &m.CreatedAt)
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

// Deactivate implementation of interface storage.BonusCodeRepository
func (r *BonusCodeRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return deactivateByID(ctx, r.db, "bonus_codes", id)
}
