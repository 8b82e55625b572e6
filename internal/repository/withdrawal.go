package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rajx/stars-bot/internal/models"
	"gorm.io/gorm"
)

func (r *Repository) CreateWithdrawal(ctx context.Context, withdrawal *models.Withdrawal) error {
	if err := r.db.WithContext(ctx).Create(withdrawal).Error; err != nil {
		return fmt.Errorf("failed to create withdrawal %s: %w", withdrawal.WithdrawalID, err)
	}
	return nil
}

func (r *Repository) GetWithdrawal(ctx context.Context, withdrawalID string) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal
	err := r.db.WithContext(ctx).
		First(&withdrawal, "withdrawal_id = ?", withdrawalID).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get withdrawal %s: %w", withdrawalID, err)
	}
	return &withdrawal, nil
}

// TransitionWithdrawal moves a pending withdrawal to a terminal status and
// stamps processed_at, in one conditional statement. Returns false when the
// withdrawal is missing or no longer pending, so a repeated admin decision
// is a detectable no-op.
func (r *Repository) TransitionWithdrawal(ctx context.Context, withdrawalID, status string, processedAt time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.Withdrawal{}).
		Where("withdrawal_id = ? AND status = ?", withdrawalID, models.WithdrawalStatusPending).
		Updates(map[string]interface{}{
			"status":       status,
			"processed_at": processedAt,
		})

	if tx.Error != nil {
		return false, fmt.Errorf("failed to transition withdrawal %s: %w", withdrawalID, tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

func (r *Repository) CountWithdrawalsByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Withdrawal{}).
		Where("status = ?", status).
		Count(&count).
		Error
	if err != nil {
		return 0, fmt.Errorf("failed to count %s withdrawals: %w", status, err)
	}
	return count, nil
}
