package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/rajx/stars-bot/internal/models"
	"gorm.io/gorm"
)

// CreateChannel inserts a new sponsor channel. The second return value is
// false when the link is already registered.
func (r *Repository) CreateChannel(ctx context.Context, channel *models.Channel) (bool, error) {
	err := r.db.WithContext(ctx).Create(channel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create channel %s: %w", channel.Link, err)
	}
	return true, nil
}

func (r *Repository) DeleteChannel(ctx context.Context, id uint) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Channel{}, id)
	if tx.Error != nil {
		return false, fmt.Errorf("failed to delete channel %d: %w", id, tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

func (r *Repository) GetChannels(ctx context.Context) ([]models.Channel, error) {
	var channels []models.Channel
	err := r.db.WithContext(ctx).
		Order("added_at ASC").
		Find(&channels).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to get channels: %w", err)
	}
	return channels, nil
}
