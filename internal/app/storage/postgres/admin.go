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
	"golang.org/x/crypto/bcrypt"
)

// storage.AdminRepository interface implementation
var _ storage.AdminRepository = (*AdminRepository)(nil)

type AdminRepository struct {
	db *sql.DB
}

func (r *AdminRepository) LoggerComponent() string {
	return "AdminRepository"
}

func NewAdminRepository(db *sql.DB) (*AdminRepository, error) {
	s := &AdminRepository{
		db: db,
	}
	return s, nil
}

// ReadByNameAndPassword implementation of interface storage.AdminRepository.
// A wrong password reads the same as a missing account.
func (r *AdminRepository) ReadByNameAndPassword(ctx context.Context, name string, password string) (*model.Admin, error) {
	const SQL = `
		SELECT id, name, password_hash
		FROM admins
		WHERE name=$1
`
	m := &model.Admin{}

	err := r.db.QueryRowContext(ctx, SQL, name).Scan(&m.ID, &m.Name, &m.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.ErrNotFound
	}

	return m, nil
}

// Read implementation of interface storage.AdminRepository
func (r *AdminRepository) Read(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	const SQL = `
		SELECT id, name
		FROM admins
		WHERE id=$1
`
	m := &model.Admin{}

	err := r.db.QueryRowContext(ctx, SQL, id).Scan(&m.ID, &m.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select: %w", err)
	}

	return m, nil
}
