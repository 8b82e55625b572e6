package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rajx/stars-bot/internal/models"
	"gorm.io/gorm"
)

func (r *Repository) GetUser(ctx context.Context, telegramID int64) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "telegram_id = ?", telegramID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user. The second return value is false when a row
// with the same telegram_id already exists, which is a signal rather than a
// failure: two "first contact" updates can race.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) (bool, error) {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create user %d: %w", user.TelegramID, err)
	}
	return true, nil
}

// CreditReferrer adds the referral bonus and bumps the referral counter in a
// single statement. Returns false when the referrer does not exist.
func (r *Repository) CreditReferrer(ctx context.Context, referrerID int64, bonus int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("telegram_id = ?", referrerID).
		Updates(map[string]interface{}{
			"balance":         gorm.Expr("balance + ?", bonus),
			"total_referrals": gorm.Expr("total_referrals + 1"),
		})

	if tx.Error != nil {
		return false, fmt.Errorf("failed to credit referrer %d: %w", referrerID, tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

// ClaimBonus credits the daily bonus if the user has never claimed or the
// last claim is at or before the cutoff. The eligibility check and the
// credit are one conditional statement, so a double-tapped claim cannot
// pay out twice.
func (r *Repository) ClaimBonus(ctx context.Context, telegramID int64, amount int64, cutoff, now time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("telegram_id = ? AND (last_bonus_claim IS NULL OR last_bonus_claim <= ?)", telegramID, cutoff).
		Updates(map[string]interface{}{
			"balance":          gorm.Expr("balance + ?", amount),
			"last_bonus_claim": now,
		})

	if tx.Error != nil {
		return false, fmt.Errorf("failed to claim bonus for user %d: %w", telegramID, tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

// IncrementBalance applies an unconditional balance increment. Callers that
// debit must use DebitBalance instead.
func (r *Repository) IncrementBalance(ctx context.Context, telegramID int64, delta int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("telegram_id = ?", telegramID).
		Update("balance", gorm.Expr("balance + ?", delta))

	if tx.Error != nil {
		return false, fmt.Errorf("failed to increment balance for user %d: %w", telegramID, tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

// DebitBalance subtracts amount from the user's balance only when the
// current balance covers it. Returns false when it does not (or the user is
// missing); the balance can never go negative through this path.
func (r *Repository) DebitBalance(ctx context.Context, telegramID int64, amount int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("telegram_id = ? AND balance >= ?", telegramID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))

	if tx.Error != nil {
		return false, fmt.Errorf("failed to debit balance for user %d: %w", telegramID, tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *Repository) ListUserIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Pluck("telegram_id", &ids).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user ids: %w", err)
	}
	return ids, nil
}
