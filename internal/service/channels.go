package service

import (
	"context"
	"time"

	"github.com/rajx/stars-bot/internal/models"
)

// AddChannel registers a sponsor channel. A duplicate link is reported as
// ErrChannelExists rather than a store failure.
func (s *Service) AddChannel(ctx context.Context, link, buttonName string) (*models.Channel, error) {
	channel := &models.Channel{
		Link:       link,
		ButtonName: buttonName,
		AddedAt:    time.Now().UTC(),
	}

	created, err := s.repo.CreateChannel(ctx, channel)
	if err != nil {
		return nil, err
	}
	if !created {
		s.logger.Warnf("Channel already exists: %s", link)
		return nil, ErrChannelExists
	}

	s.logger.Infof("Channel added: %s - %s", buttonName, link)
	return channel, nil
}

func (s *Service) RemoveChannel(ctx context.Context, id uint) error {
	deleted, err := s.repo.DeleteChannel(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrChannelNotFound
	}

	s.logger.Infof("Channel removed: %d", id)
	return nil
}

func (s *Service) ListChannels(ctx context.Context) ([]models.Channel, error) {
	return s.repo.GetChannels(ctx)
}
