package storage

import (
	"context"
	"time"

	"backoffice/internal/app/model"

	"github.com/google/uuid"
)

// FilterAll disables the status predicate on listing queries.
const FilterAll = "ALL"

type AdminRepository interface {
	// ReadByNameAndPassword instance of model.Admin, comparing the bcrypt hash
	ReadByNameAndPassword(ctx context.Context, name string, password string) (*model.Admin, error)
	// Read instance of model.Admin
	Read(ctx context.Context, id uuid.UUID) (*model.Admin, error)
}

type ProfileRepository interface {
	// ReadByPhone resolves a profile by exact phone match
	ReadByPhone(ctx context.Context, phone string) (*model.Profile, error)
	// Read instance of model.Profile
	Read(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	// All returns the newest profiles, bounded by limit
	All(ctx context.Context, limit int) ([]*model.Profile, error)
}

// TransactionRepository is the shape shared by deposit and withdrawal rows.
// Locate-style lookups return the single most recent match; day, when set,
// bounds creation time to the full local day of that date.
type TransactionRepository interface {
	// Read instance of the transaction by id
	Read(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	// Recent returns the newest transactions, statusFilter is a raw literal or FilterAll
	Recent(ctx context.Context, statusFilter string, limit int) ([]*model.Transaction, error)
	// UpdateStatus conditionally moves the raw status column from prev to next.
	// Zero affected rows surface apperr.ErrStaleStatus.
	UpdateStatus(ctx context.Context, id uuid.UUID, prev, next string) error
}

type DepositRepository interface {
	TransactionRepository
	// LatestByUser returns the most recent deposit of the user matching rawStatus
	LatestByUser(ctx context.Context, userID uuid.UUID, rawStatus string, day *time.Time) (*model.Transaction, error)
}

type WithdrawalRepository interface {
	TransactionRepository
	// LatestByPhone returns the most recent withdrawal matching the denormalized phone
	LatestByPhone(ctx context.Context, phone string, rawStatus string, day *time.Time) (*model.Transaction, error)
}

type ProductRepository interface {
	All(ctx context.Context) ([]*model.Product, error)
	Create(ctx context.Context, m *model.Product) (*model.Product, error)
	Update(ctx context.Context, m *model.Product) (*model.Product, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type BonusCodeRepository interface {
	All(ctx context.Context) ([]*model.BonusCode, error)
	Create(ctx context.Context, m *model.BonusCode) (*model.BonusCode, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type BankAccountRepository interface {
	All(ctx context.Context) ([]*model.BankAccount, error)
	Create(ctx context.Context, m *model.BankAccount) (*model.BankAccount, error)
	Update(ctx context.Context, m *model.BankAccount) (*model.BankAccount, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}
