package feed

import (
	"context"
	"sync"

	"backoffice/internal/app/logger"
	"backoffice/internal/app/model"
	"backoffice/internal/app/notify"
	"backoffice/internal/app/storage"

	"github.com/go-redis/redis/v8"
)

// DefaultLimit bounds the feed when the caller does not ask for a size.
const DefaultLimit = 20

// View is what the feed is currently looking at. Changing any field
// replaces the whole result; the feed never patches incrementally.
type View struct {
	Direction model.Direction
	Status    string // raw literal or storage.FilterAll
	Limit     int
}

// Service serves the recent-activity feed and keeps its snapshot fresh by
// re-fetching on change notifications. Responses carry a generation
// counter so a slow query for a superseded view never overwrites a newer
// snapshot.
type Service struct {
	logger      logger.Logger
	deposits    storage.DepositRepository
	withdrawals storage.WithdrawalRepository
	rdb         *redis.Client
	stopCh      chan struct{}
	stopOnce    sync.Once

	mu      sync.Mutex
	current View
	gen     uint64
	rows    []*model.Transaction
}

func (s *Service) LoggerComponent() string {
	return "Feed.Service"
}

// New feed service. rdb may be nil; the feed then refreshes only on demand.
func New(deposits storage.DepositRepository, withdrawals storage.WithdrawalRepository, rdb *redis.Client) (*Service, error) {
	s := &Service{
		logger:      logger.Global().WithComponent("Feed.Service"),
		deposits:    deposits,
		withdrawals: withdrawals,
		rdb:         rdb,
		stopCh:      make(chan struct{}),
		current: View{
			Direction: model.DirectionDeposit,
			Status:    storage.FilterAll,
			Limit:     DefaultLimit,
		},
	}

	return s, nil
}

// List re-queries the feed for the view and makes it current. The result is
// the limit most recent transactions, newest first.
func (s *Service) List(ctx context.Context, v View) ([]*model.Transaction, error) {
	if v.Limit <= 0 {
		v.Limit = DefaultLimit
	}
	if v.Status == "" {
		v.Status = storage.FilterAll
	}

	s.mu.Lock()
	if v != s.current {
		s.current = v
		s.gen++
	}
	gen := s.gen
	s.mu.Unlock()

	rows, err := s.query(ctx, v)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	// Stale-response guard: a response for a superseded view is returned to
	// its caller but does not become the snapshot.
	if gen == s.gen && v == s.current {
		s.rows = rows
	}
	s.mu.Unlock()

	return rows, nil
}

// Snapshot returns the last applied result and the view it belongs to.
func (s *Service) Snapshot() (View, []*model.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]*model.Transaction, len(s.rows))
	copy(rows, s.rows)

	return s.current, rows
}

// Refresh re-fetches the current view if it shows the given direction.
func (s *Service) Refresh(ctx context.Context, d model.Direction) error {
	s.mu.Lock()
	v := s.current
	s.mu.Unlock()

	if v.Direction != d {
		return nil
	}

	_, err := s.List(ctx, v)
	return err
}

// Run subscribes to the change channels and re-fetches on every message
// until Stop or context cancellation. Notifications carry no diff; any
// message for the watched direction triggers a full re-fetch.
func (s *Service) Run(ctx context.Context) {
	if s.rdb == nil {
		<-s.stopCh
		return
	}

	ps := s.rdb.Subscribe(ctx, notify.Channel(model.DirectionDeposit), notify.Channel(model.DirectionWithdrawal))
	defer func() {
		_ = ps.Close()
	}()

	ch := ps.Channel()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}

			d := model.DirectionDeposit
			if msg.Channel == notify.Channel(model.DirectionWithdrawal) {
				d = model.DirectionWithdrawal
			}

			if err := s.Refresh(ctx, d); err != nil {
				s.logger.Warn().Err(err).Str("channel", msg.Channel).Msg("Feed refresh failed")
			}
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		}
	}
}

// Stop terminates Run.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

func (s *Service) query(ctx context.Context, v View) ([]*model.Transaction, error) {
	var repo storage.TransactionRepository = s.deposits
	if v.Direction == model.DirectionWithdrawal {
		repo = s.withdrawals
	}

	rows, err := repo.Recent(ctx, v.Status, v.Limit)
	if err != nil {
		return nil, err
	}

	for _, m := range rows {
		m.Decorate()
	}

	return rows, nil
}
