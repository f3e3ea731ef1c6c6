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

// storage.ProductRepository interface implementation
var _ storage.ProductRepository = (*ProductRepository)(nil)

type ProductRepository struct {
	db *sql.DB
}

func (r *ProductRepository) LoggerComponent() string {
	return "ProductRepository"
}

func NewProductRepository(db *sql.DB) (*ProductRepository, error) {
	s := &ProductRepository{
		db: db,
	}
	return s, nil
}

// All implementation of interface storage.ProductRepository
func (r *ProductRepository) All(ctx context.Context) ([]*model.Product, error) {
	const SQL = `
		SELECT id, name, min_amount, yield_rate, duration_days, active, created_at
		FROM products
		ORDER BY created_at DESC
`
	rows, err := r.db.QueryContext(ctx, SQL)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	res := make([]*model.Product, 0)
	for rows.Next() {
		m := &model.Product{}
		if err := rows.Scan(&m.ID, &m.Name, &m.MinAmount, &m.YieldRate, &m.DurationDays, &m.Active, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		res = append(res, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return res, nil
}

// Create implementation of interface storage.ProductRepository
func (r *ProductRepository) Create(ctx context.Context, m *model.Product) (*model.Product, error) {
	const SQL = `
		INSERT INTO products (name, min_amount, yield_rate, duration_days, active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING id, created_at
`

	err := r.db.QueryRowContext(ctx, SQL, m.Name, m.MinAmount, m.YieldRate, m.DurationDays).Scan(&m.ID, &m.CreatedAt)
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

// Update implementation of interface storage.ProductRepository
func (r *ProductRepository) Update(ctx context.Context, m *model.Product) (*model.Product, error) {
	const SQL = `
		UPDATE products
		SET name=$1, min_amount=$2, yield_rate=$3, duration_days=$4, active=$5
		WHERE id=$6
`

	res, err := r.db.ExecContext(ctx, SQL, m.Name, m.MinAmount, m.YieldRate, m.DurationDays, m.Active, m.ID)
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

// Deactivate implementation of interface storage.ProductRepository
func (r *ProductRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return deactivateByID(ctx, r.db, "products", id)
}

// deactivateByID flips the active flag on any table carrying one.
func deactivateByID(ctx context.Context, db *sql.DB, table string, id uuid.UUID) error {
	SQL := fmt.Sprintf(`UPDATE %s SET active=false WHERE id=$1`, table)

	res, err := db.ExecContext(ctx, SQL, id)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}
