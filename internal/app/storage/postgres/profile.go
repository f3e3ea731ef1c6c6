package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"backoffice/internal/app/apperr"
	"backoffice/internal/app/model"
	"backoffice/internal/app/storage"

	"github.com/google/uuid"
)

// storage.ProfileRepository interface implementation
var _ storage.ProfileRepository = (*ProfileRepository)(nil)

type ProfileRepository struct {
	db *sql.DB
}

func (r *ProfileRepository) LoggerComponent() string {
	return "ProfileRepository"
}

func NewProfileRepository(db *sql.DB) (*ProfileRepository, error) {
	s := &ProfileRepository{
		db: db,
	}
	return s, nil
}

// ReadByPhone implementation of interface storage.ProfileRepository
func (r *ProfileRepository) ReadByPhone(ctx context.Context, phone string) (*model.Profile, error) {
	const SQL = `
		SELECT id, full_name, phone, created_at
		FROM profiles
		WHERE phone=$1
`
	m := &model.Profile{}

	err := r.db.QueryRowContext(ctx, SQL, phone).Scan(&m.ID, &m.FullName, &m.Phone, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select: %w", err)
	}

	return m, nil
}

// Read implementation of interface storage.ProfileRepository
func (r *ProfileRepository) Read(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	const SQL = `
		SELECT id, full_name, phone, created_at
		FROM profiles
		WHERE id=$1
`
	m := &model.Profile{}

	err := r.db.QueryRowContext(ctx, SQL, id).Scan(&m.ID, &m.FullName, &m.Phone, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select: %w", err)
	}

	return m, nil
}

// All implementation of interface storage.ProfileRepository
func (r *ProfileRepository) All(ctx context.Context, limit int) ([]*model.Profile, error) {
	const SQL = `
		SELECT id, full_name, phone, created_at
		FROM profiles
		ORDER BY created_at DESC
		LIMIT $1
`
	rows, err := r.db.QueryContext(ctx, SQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	res := make([]*model.Profile, 0, limit)
	for rows.Next() {
		m := &model.Profile{}
		if err := rows.Scan(&m.ID, &m.FullName, &m.Phone, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		res = append(res, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return res, nil
}
