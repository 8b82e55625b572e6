package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rajx/stars-bot/internal/models"
)

// newWithdrawalID builds a traceable id: a sortable timestamp+user prefix
// plus a random token that closes the same-user-same-second collision
// window.
func newWithdrawalID(userID int64, now time.Time) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("WD%s%d-%s", now.Format("20060102150405"), userID, token)
}

// CreateWithdrawal places a withdrawal request. The amount is debited
// immediately (escrow), before any admin decision, so concurrent pending
// requests cannot jointly overdraw the balance.
func (s *Service) CreateWithdrawal(ctx context.Context, userID int64, username string, amount int64) (*models.Withdrawal, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if amount < s.minWithdrawal {
		return nil, ErrBelowMinimum
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	debited, err := s.repo.DebitBalance(ctx, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to hold withdrawal amount: %w", err)
	}
	if !debited {
		return nil, ErrInsufficientBalance
	}

	now := time.Now().UTC()
	withdrawal := &models.Withdrawal{
		WithdrawalID: newWithdrawalID(userID, now),
		UserID:       userID,
		Username:     username,
		Amount:       amount,
		Status:       models.WithdrawalStatusPending,
		CreatedAt:    now,
	}

	if err := s.repo.CreateWithdrawal(ctx, withdrawal); err != nil {
		// Release the hold, the request was never recorded.
		if _, refundErr := s.repo.IncrementBalance(ctx, userID, amount); refundErr != nil {
			s.logger.Errorf("Failed to release hold of %d⭐ for user %d: %v", amount, userID, refundErr)
		}
		return nil, err
	}

	s.logger.Infof("Withdrawal request created: %s", withdrawal.WithdrawalID)
	s.notifier.WithdrawalCreated(withdrawal)
	return withdrawal, nil
}

// ApproveWithdrawal moves a pending withdrawal to approved. The funds were
// already debited at request time, so there is no balance change. A second
// decision on the same withdrawal fails without any mutation.
func (s *Service) ApproveWithdrawal(ctx context.Context, withdrawalID string) (*models.Withdrawal, error) {
	withdrawal, err := s.repo.GetWithdrawal(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}
	if withdrawal == nil {
		return nil, ErrWithdrawalNotFound
	}

	now := time.Now().UTC()
	ok, err := s.repo.TransitionWithdrawal(ctx, withdrawalID, models.WithdrawalStatusApproved, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrWithdrawalNotPending
	}

	withdrawal.Status = models.WithdrawalStatusApproved
	withdrawal.ProcessedAt = &now

	s.logger.Infof("Withdrawal approved: %s", withdrawalID)
	s.notifier.WithdrawalApproved(withdrawal)
	return withdrawal, nil
}

// RejectWithdrawal moves a pending withdrawal to rejected and refunds the
// held amount. The refund happens only on the one call that wins the
// transition, so a repeated rejection cannot double-refund.
func (s *Service) RejectWithdrawal(ctx context.Context, withdrawalID string) (*models.Withdrawal, error) {
	withdrawal, err := s.repo.GetWithdrawal(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}
	if withdrawal == nil {
		return nil, ErrWithdrawalNotFound
	}

	now := time.Now().UTC()
	ok, err := s.repo.TransitionWithdrawal(ctx, withdrawalID, models.WithdrawalStatusRejected, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrWithdrawalNotPending
	}

	if _, err := s.repo.IncrementBalance(ctx, withdrawal.UserID, withdrawal.Amount); err != nil {
		s.logger.Errorf("Failed to refund %d⭐ to user %d for withdrawal %s: %v",
			withdrawal.Amount, withdrawal.UserID, withdrawalID, err)
	}

	withdrawal.Status = models.WithdrawalStatusRejected
	withdrawal.ProcessedAt = &now

	s.logger.Infof("Withdrawal rejected and refunded: %s", withdrawalID)
	s.notifier.WithdrawalRejected(withdrawal)
	return withdrawal, nil
}

func (s *Service) WithdrawalStats(ctx context.Context) (*models.WithdrawalStats, error) {
	pending, err := s.repo.CountWithdrawalsByStatus(ctx, models.WithdrawalStatusPending)
	if err != nil {
		return nil, err
	}
	approved, err := s.repo.CountWithdrawalsByStatus(ctx, models.WithdrawalStatusApproved)
	if err != nil {
		return nil, err
	}
	rejected, err := s.repo.CountWithdrawalsByStatus(ctx, models.WithdrawalStatusRejected)
	if err != nil {
		return nil, err
	}

	return &models.WithdrawalStats{
		Pending:  pending,
		Approved: approved,
		Rejected: rejected,
	}, nil
}
