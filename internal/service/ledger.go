package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rajx/stars-bot/internal/models"
)

// RegisterUser creates a user on first contact. When the insert loses a
// race to a concurrent first contact, the existing record is returned and
// no referral is credited again: the bonus is tied to the one insert that
// actually created the row.
func (s *Service) RegisterUser(ctx context.Context, telegramID int64, username, firstName string, referredBy *int64) (*models.User, error) {
	if referredBy != nil && *referredBy == telegramID {
		referredBy = nil
	}

	user := &models.User{
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
		ReferredBy: referredBy,
		JoinedAt:   time.Now().UTC(),
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	if !created {
		existing, err := s.repo.GetUser(ctx, telegramID)
		if err != nil {
			return nil, fmt.Errorf("failed to load existing user: %w", err)
		}
		if existing != nil {
			return existing, nil
		}
		return user, nil
	}

	if referredBy != nil {
		credited, err := s.repo.CreditReferrer(ctx, *referredBy, s.referralBonus)
		if err != nil {
			s.logger.Errorf("Failed to credit referrer %d for user %d: %v", *referredBy, telegramID, err)
		} else if credited {
			s.logger.Infof("Referral bonus given to user %d", *referredBy)
		}
	}

	return user, nil
}

// ClaimDailyBonus credits the daily bonus when the cooldown window has
// elapsed. Reports false when the user is still on cooldown (or missing).
func (s *Service) ClaimDailyBonus(ctx context.Context, telegramID int64) (bool, error) {
	now := time.Now().UTC()
	cutoff := now.Add(-s.bonusCooldown)

	claimed, err := s.repo.ClaimBonus(ctx, telegramID, s.dailyBonus, cutoff, now)
	if err != nil {
		return false, fmt.Errorf("failed to claim daily bonus: %w", err)
	}
	return claimed, nil
}

// AdjustBalance applies a signed balance change. Debits are conditional at
// the store so the balance cannot go negative even without a caller
// pre-check.
func (s *Service) AdjustBalance(ctx context.Context, telegramID int64, delta int64) error {
	if delta < 0 {
		ok, err := s.repo.DebitBalance(ctx, telegramID, -delta)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInsufficientBalance
		}
		return nil
	}

	ok, err := s.repo.IncrementBalance(ctx, telegramID, delta)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}

// RemainingBonusCooldown returns how long until the next claim is allowed,
// zero when the user can claim now.
func (s *Service) RemainingBonusCooldown(ctx context.Context, telegramID int64) (time.Duration, error) {
	user, err := s.repo.GetUser(ctx, telegramID)
	if err != nil {
		return 0, err
	}
	if user == nil || user.LastBonusClaim == nil {
		return 0, nil
	}

	remaining := s.bonusCooldown - time.Now().UTC().Sub(*user.LastBonusClaim)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}
