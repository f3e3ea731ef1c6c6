package app

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"backoffice/internal/app/auditlog"
	"backoffice/internal/app/config"
	"backoffice/internal/app/logger"
	"backoffice/internal/app/notify"
	"backoffice/internal/app/service/feed"
	"backoffice/internal/app/service/review"
	"backoffice/internal/app/session"
	"backoffice/internal/app/storage"
	"backoffice/internal/app/storage/postgres"
	"backoffice/pkg/receipt"

	"github.com/go-redis/redis/v8"
)

type App struct {
	config  config.Config
	logger  logger.Logger
	session session.Manager
	audit   auditlog.Recorder
	receipt *receipt.Service
	review  *review.Service
	feed    *feed.Service

	admins      storage.AdminRepository
	profiles    storage.ProfileRepository
	deposits    storage.DepositRepository
	withdrawals storage.WithdrawalRepository
	products    storage.ProductRepository
	codes       storage.BonusCodeRepository
	accounts    storage.BankAccountRepository

	stopCh chan struct{}
}

func New(cfg config.Config, logger logger.Logger, e embed.FS) (*App, error) {
	rc, err := receipt.NewService(cfg.Receipt.RemoteURL)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if err := applyMigrations(e, db); err != nil {
		return nil, fmt.Errorf("db migrate: %w", err)
	}

	admins, err := postgres.NewAdminRepository(db)
	if err != nil {
		return nil, fmt.Errorf("admin repository init: %w", err)
	}

	profiles, err := postgres.NewProfileRepository(db)
	if err != nil {
		return nil, fmt.Errorf("profile repository init: %w", err)
	}

	deposits, err := postgres.NewDepositRepository(db)
	if err != nil {
		return nil, fmt.Errorf("deposit repository init: %w", err)
	}

	withdrawals, err := postgres.NewWithdrawalRepository(db)
	if err != nil {
		return nil, fmt.Errorf("withdrawal repository init: %w", err)
	}

	products, err := postgres.NewProductRepository(db)
	if err != nil {
		return nil, fmt.Errorf("product repository init: %w", err)
	}

	codes, err := postgres.NewBonusCodeRepository(db)
	if err != nil {
		return nil, fmt.Errorf("bonus code repository init: %w", err)
	}

	accounts, err := postgres.NewBankAccountRepository(db)
	if err != nil {
		return nil, fmt.Errorf("bank account repository init: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	audit := auditlog.NewMemory()

	rs, err := review.New(profiles, deposits, withdrawals, audit, notify.NewRedisPublisher(rdb))
	if err != nil {
		return nil, fmt.Errorf("review service init: %w", err)
	}

	fs, err := feed.New(deposits, withdrawals, rdb)
	if err != nil {
		return nil, fmt.Errorf("feed service init: %w", err)
	}

	a := &App{
		config:      cfg,
		logger:      logger,
		stopCh:      make(chan struct{}),
		session:     session.NewMemory(cfg.SecretKey, admins),
		audit:       audit,
		receipt:     rc,
		review:      rs,
		feed:        fs,
		admins:      admins,
		profiles:    profiles,
		deposits:    deposits,
		withdrawals: withdrawals,
		products:    products,
		codes:       codes,
		accounts:    accounts,
	}

	go a.feed.Run(context.Background())

	go func() {
		<-a.stopCh
		a.feed.Stop()
		a.logger.Info().Msg("Shutting down application")
	}()

	return a, nil
}

func (a *App) Stop() {
	close(a.stopCh)
}
