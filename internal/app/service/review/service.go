package review

import (
	"context"
	"fmt"
	"time"

	"backoffice/internal/app/apperr"
	"backoffice/internal/app/auditlog"
	"backoffice/internal/app/logger"
	"backoffice/internal/app/model"
	"backoffice/internal/app/storage"

	"github.com/google/uuid"
)

// ChangePublisher fans out a change notification after a settlement write
// is acknowledged.
type ChangePublisher interface {
	Publish(ctx context.Context, d model.Direction) error
}

// Service locates transactions for review and applies settlement decisions.
type Service struct {
	logger      logger.Logger
	profiles    storage.ProfileRepository
	deposits    storage.DepositRepository
	withdrawals storage.WithdrawalRepository
	audit       auditlog.Recorder
	publisher   ChangePublisher
}

func (s *Service) LoggerComponent() string {
	return "Review.Service"
}

func New(
	profiles storage.ProfileRepository,
	deposits storage.DepositRepository,
	withdrawals storage.WithdrawalRepository,
	audit auditlog.Recorder,
	publisher ChangePublisher,
) (*Service, error) {
	s := &Service{
		logger:      logger.Global().WithComponent("Review.Service"),
		profiles:    profiles,
		deposits:    deposits,
		withdrawals: withdrawals,
		audit:       audit,
		publisher:   publisher,
	}

	return s, nil
}

// LocateQuery describes one "find the latest matching transaction" search.
// OnDate, when set, restricts matches to the full local day of that date.
type LocateQuery struct {
	Phone     string
	Direction model.Direction
	RawStatus string
	OnDate    *time.Time
}

// Locate finds at most one transaction: the most recent one matching the
// query. A missing profile (deposits) or zero matching rows yields
// apperr.ErrNotFound, which is an empty result, not a backend failure.
func (s *Service) Locate(ctx context.Context, q LocateQuery) (*model.Transaction, error) {
	l := logger.Get(ctx, s)

	if !model.ValidPhone(q.Phone) {
		return nil, fmt.Errorf("%w: malformed phone %q", apperr.ErrInvalidInput, q.Phone)
	}

	var (
		m   *model.Transaction
		err error
	)

	switch q.Direction {
	case model.DirectionDeposit:
		// Deposits key on the owning profile; no profile, no search.
		p, perr := s.profiles.ReadByPhone(ctx, q.Phone)
		if perr != nil {
			return nil, perr
		}
		m, err = s.deposits.LatestByUser(ctx, p.ID, q.RawStatus, q.OnDate)
	case model.DirectionWithdrawal:
		m, err = s.withdrawals.LatestByPhone(ctx, q.Phone, q.RawStatus, q.OnDate)
	default:
		return nil, fmt.Errorf("%w: direction %q", apperr.ErrInvalidInput, q.Direction)
	}

	if err != nil {
		return nil, err
	}

	m.Decorate()

	l.Debug().
		Str("transaction_id", m.ID.String()).
		Str("raw_status", m.RawStatus).
		Msg("Located transaction")

	return m, nil
}

// Get reads one transaction by direction and id, decorated.
func (s *Service) Get(ctx context.Context, d model.Direction, id uuid.UUID) (*model.Transaction, error) {
	m, err := s.repositoryFor(d).Read(ctx, id)
	if err != nil {
		return nil, err
	}

	m.Decorate()

	return m, nil
}

// Settle writes the operator-selected raw status to the backend record and,
// only after the write is acknowledged, appends one audit entry and
// publishes a change notification. The write is conditional on the raw
// status the operator observed; a concurrent change surfaces
// apperr.ErrStaleStatus instead of silently overwriting.
func (s *Service) Settle(ctx context.Context, m *model.Transaction, newRawStatus, actor string) error {
	l := logger.Get(ctx, s)

	if !model.CanAssign(m.Direction, newRawStatus) {
		return fmt.Errorf("%w: status %q not assignable for %s", apperr.ErrInvalidInput, newRawStatus, m.Direction)
	}

	if err := s.repositoryFor(m.Direction).UpdateStatus(ctx, m.ID, m.RawStatus, newRawStatus); err != nil {
		return err
	}

	details := fmt.Sprintf("transaction %s (%s) status %q -> %q", m.ID, m.Direction, m.RawStatus, newRawStatus)
	s.audit.Append(ctx, actor, "settlement", details)

	if s.publisher != nil {
		// Best effort: the settlement itself is already durable.
		if err := s.publisher.Publish(ctx, m.Direction); err != nil {
			l.Warn().Err(err).Msg("Change notification publish failed")
		}
	}

	l.Info().
		Str("transaction_id", m.ID.String()).
		Str("new_status", newRawStatus).
		Str("actor", actor).
		Msg("Transaction settled")

	return nil
}

func (s *Service) repositoryFor(d model.Direction) storage.TransactionRepository {
	if d == model.DirectionWithdrawal {
		return s.withdrawals
	}
	return s.deposits
}
