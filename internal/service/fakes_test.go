package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rajx/stars-bot/config"
	"github.com/rajx/stars-bot/internal/models"
	"github.com/rajx/stars-bot/utils"
)

// fakeRepo is an in-memory Repository that mirrors the conditional-update
// semantics of the real store, so the race-sensitive properties (double
// claim, double decision, duplicate create) are exercised the same way.
type fakeRepo struct {
	mu sync.Mutex

	users         map[int64]*models.User
	channels      map[uint]*models.Channel
	channelLinks  map[string]bool
	nextChannelID uint
	withdrawals   map[string]*models.Withdrawal

	failCreateWithdrawal bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:        make(map[int64]*models.User),
		channels:     make(map[uint]*models.Channel),
		channelLinks: make(map[string]bool),
		withdrawals:  make(map[string]*models.Withdrawal),
	}
}

func (r *fakeRepo) GetUser(_ context.Context, telegramID int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[telegramID]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeRepo) CreateUser(_ context.Context, user *models.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.TelegramID]; ok {
		return false, nil
	}
	copied := *user
	r.users[user.TelegramID] = &copied
	return true, nil
}

func (r *fakeRepo) CreditReferrer(_ context.Context, referrerID int64, bonus int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[referrerID]
	if !ok {
		return false, nil
	}
	user.Balance += bonus
	user.TotalReferrals++
	return true, nil
}

func (r *fakeRepo) ClaimBonus(_ context.Context, telegramID int64, amount int64, cutoff, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[telegramID]
	if !ok {
		return false, nil
	}
	if user.LastBonusClaim != nil && user.LastBonusClaim.After(cutoff) {
		return false, nil
	}
	user.Balance += amount
	claimedAt := now
	user.LastBonusClaim = &claimedAt
	return true, nil
}

func (r *fakeRepo) IncrementBalance(_ context.Context, telegramID int64, delta int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[telegramID]
	if !ok {
		return false, nil
	}
	user.Balance += delta
	return true, nil
}

func (r *fakeRepo) DebitBalance(_ context.Context, telegramID int64, amount int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[telegramID]
	if !ok || user.Balance < amount {
		return false, nil
	}
	user.Balance -= amount
	return true, nil
}

func (r *fakeRepo) CountUsers(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeRepo) ListUserIDs(_ context.Context) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *fakeRepo) CreateChannel(_ context.Context, channel *models.Channel) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.channelLinks[channel.Link] {
		return false, nil
	}
	r.nextChannelID++
	channel.ID = r.nextChannelID
	copied := *channel
	r.channels[channel.ID] = &copied
	r.channelLinks[channel.Link] = true
	return true, nil
}

func (r *fakeRepo) DeleteChannel(_ context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	channel, ok := r.channels[id]
	if !ok {
		return false, nil
	}
	delete(r.channelLinks, channel.Link)
	delete(r.channels, id)
	return true, nil
}

func (r *fakeRepo) GetChannels(_ context.Context) ([]models.Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	channels := make([]models.Channel, 0, len(r.channels))
	for _, channel := range r.channels {
		channels = append(channels, *channel)
	}
	return channels, nil
}

func (r *fakeRepo) CreateWithdrawal(_ context.Context, withdrawal *models.Withdrawal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreateWithdrawal {
		return errors.New("store unavailable")
	}
	if _, ok := r.withdrawals[withdrawal.WithdrawalID]; ok {
		return errors.New("duplicate withdrawal id")
	}
	copied := *withdrawal
	r.withdrawals[withdrawal.WithdrawalID] = &copied
	return nil
}

func (r *fakeRepo) GetWithdrawal(_ context.Context, withdrawalID string) (*models.Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	withdrawal, ok := r.withdrawals[withdrawalID]
	if !ok {
		return nil, nil
	}
	copied := *withdrawal
	return &copied, nil
}

func (r *fakeRepo) TransitionWithdrawal(_ context.Context, withdrawalID, status string, processedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	withdrawal, ok := r.withdrawals[withdrawalID]
	if !ok || withdrawal.Status != models.WithdrawalStatusPending {
		return false, nil
	}
	withdrawal.Status = status
	stamp := processedAt
	withdrawal.ProcessedAt = &stamp
	return true, nil
}

func (r *fakeRepo) CountWithdrawalsByStatus(_ context.Context, status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, withdrawal := range r.withdrawals {
		if withdrawal.Status == status {
			count++
		}
	}
	return count, nil
}

// recordingNotifier counts lifecycle events per withdrawal id.
type recordingNotifier struct {
	mu       sync.Mutex
	created  []string
	approved []string
	rejected []string
}

func (n *recordingNotifier) WithdrawalCreated(w *models.Withdrawal) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, w.WithdrawalID)
}

func (n *recordingNotifier) WithdrawalApproved(w *models.Withdrawal) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.approved = append(n.approved, w.WithdrawalID)
}

func (n *recordingNotifier) WithdrawalRejected(w *models.Withdrawal) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rejected = append(n.rejected, w.WithdrawalID)
}

func newTestService(repo Repository, notifier Notifier) *Service {
	cfg := &config.Config{
		DailyBonus:    1,
		ReferralBonus: 1,
		MinWithdrawal: 15,
		BonusCooldown: 24 * time.Hour,
	}
	return NewService(repo, notifier, cfg, utils.InitLogger())
}

func seedUser(repo *fakeRepo, telegramID, balance int64) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.users[telegramID] = &models.User{
		TelegramID: telegramID,
		FirstName:  "Test",
		Balance:    balance,
		JoinedAt:   time.Now().UTC(),
	}
}

func setLastClaim(repo *fakeRepo, telegramID int64, claimedAt time.Time) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.users[telegramID].LastBonusClaim = &claimedAt
}

func userBalance(repo *fakeRepo, telegramID int64) int64 {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return repo.users[telegramID].Balance
}
