package service

import (
	"context"
	"errors"
	"time"

	"github.com/rajx/stars-bot/config"
	"github.com/rajx/stars-bot/internal/models"
	"github.com/rajx/stars-bot/utils"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrBelowMinimum         = errors.New("amount below minimum withdrawal")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrWithdrawalNotFound   = errors.New("withdrawal not found")
	ErrWithdrawalNotPending = errors.New("withdrawal is not pending")
	ErrChannelExists        = errors.New("channel already exists")
	ErrChannelNotFound      = errors.New("channel not found")
)

type Service struct {
	repo          Repository
	notifier      Notifier
	dailyBonus    int64
	referralBonus int64
	minWithdrawal int64
	bonusCooldown time.Duration
	logger        *utils.Logger
}

type Repository interface {
	GetUser(ctx context.Context, telegramID int64) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (bool, error)
	CreditReferrer(ctx context.Context, referrerID int64, bonus int64) (bool, error)
	ClaimBonus(ctx context.Context, telegramID int64, amount int64, cutoff, now time.Time) (bool, error)
	IncrementBalance(ctx context.Context, telegramID int64, delta int64) (bool, error)
	DebitBalance(ctx context.Context, telegramID int64, amount int64) (bool, error)
	CountUsers(ctx context.Context) (int64, error)
	ListUserIDs(ctx context.Context) ([]int64, error)

	CreateChannel(ctx context.Context, channel *models.Channel) (bool, error)
	DeleteChannel(ctx context.Context, id uint) (bool, error)
	GetChannels(ctx context.Context) ([]models.Channel, error)

	CreateWithdrawal(ctx context.Context, withdrawal *models.Withdrawal) error
	GetWithdrawal(ctx context.Context, withdrawalID string) (*models.Withdrawal, error)
	TransitionWithdrawal(ctx context.Context, withdrawalID, status string, processedAt time.Time) (bool, error)
	CountWithdrawalsByStatus(ctx context.Context, status string) (int64, error)
}

// Notifier delivers withdrawal lifecycle events to the user and the admin.
// Delivery is best-effort: implementations log failures instead of
// returning them, the ledger mutation is the source of truth.
type Notifier interface {
	WithdrawalCreated(withdrawal *models.Withdrawal)
	WithdrawalApproved(withdrawal *models.Withdrawal)
	WithdrawalRejected(withdrawal *models.Withdrawal)
}

func NewService(repo Repository, notifier Notifier, cfg *config.Config, logger *utils.Logger) *Service {
	return &Service{
		repo:          repo,
		notifier:      notifier,
		dailyBonus:    cfg.DailyBonus,
		referralBonus: cfg.ReferralBonus,
		minWithdrawal: cfg.MinWithdrawal,
		bonusCooldown: cfg.BonusCooldown,
		logger:        logger,
	}
}

func (s *Service) GetUser(ctx context.Context, telegramID int64) (*models.User, error) {
	return s.repo.GetUser(ctx, telegramID)
}

func (s *Service) TotalUsers(ctx context.Context) (int64, error) {
	return s.repo.CountUsers(ctx)
}

func (s *Service) ListUserIDs(ctx context.Context) ([]int64, error) {
	return s.repo.ListUserIDs(ctx)
}

func (s *Service) MinWithdrawal() int64 {
	return s.minWithdrawal
}

func (s *Service) DailyBonus() int64 {
	return s.dailyBonus
}

func (s *Service) ReferralBonus() int64 {
	return s.referralBonus
}
