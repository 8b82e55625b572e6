package service

import (
	"context"
	"testing"

	"github.com/rajx/stars-bot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWithdrawal(t *testing.T) {
	ctx := context.Background()

	t.Run("debits balance immediately", func(t *testing.T) {
		repo := newFakeRepo()
		notifier := &recordingNotifier{}
		svc := newTestService(repo, notifier)
		seedUser(repo, 1, 100)

		withdrawal, err := svc.CreateWithdrawal(ctx, 1, "@alice", 40)

		require.NoError(t, err)
		assert.Equal(t, models.WithdrawalStatusPending, withdrawal.Status)
		assert.Equal(t, int64(40), withdrawal.Amount)
		assert.Equal(t, int64(60), userBalance(repo, 1))
		assert.Equal(t, []string{withdrawal.WithdrawalID}, notifier.created)
	})

	t.Run("rejects amount below minimum", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &recordingNotifier{})
		seedUser(repo, 1, 100)

		_, err := svc.CreateWithdrawal(ctx, 1, "@alice", 14)

		assert.ErrorIs(t, err, ErrBelowMinimum)
		assert.Equal(t, int64(100), userBalance(repo, 1))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &recordingNotifier{})
		seedUser(repo, 1, 100)

		_, err := svc.CreateWithdrawal(ctx, 1, "@alice", 0)

		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("rejects amount above balance", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &recordingNotifier{})
		seedUser(repo, 1, 30)

		_, err := svc.CreateWithdrawal(ctx, 1, "@alice", 31)

		assert.ErrorIs(t, err, ErrInsufficientBalance)
		assert.Equal(t, int64(30), userBalance(repo, 1))
	})

	t.Run("pending requests cannot jointly overdraw", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &recordingNotifier{})
		seedUser(repo, 1, 50)

		_, err := svc.CreateWithdrawal(ctx, 1, "@alice", 30)
		require.NoError(t, err)

		_, err = svc.CreateWithdrawal(ctx, 1, "@alice", 30)

		assert.ErrorIs(t, err, ErrInsufficientBalance)
		assert.Equal(t, int64(20), userBalance(repo, 1))
	})

	t.Run("fails for unknown user", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &recordingNotifier{})

		_, err := svc.CreateWithdrawal(ctx, 404, "@ghost", 20)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("releases hold when the insert fails", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &recordingNotifier{})
		seedUser(repo, 1, 100)
		repo.failCreateWithdrawal = true

		_, err := svc.CreateWithdrawal(ctx, 1, "@alice", 40)

		assert.Error(t, err)
		assert.Equal(t, int64(100), userBalance(repo, 1))
	})

	t.Run("concurrent requests get distinct ids", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &recordingNotifier{})
		seedUser(repo, 1, 100)

		first, err := svc.CreateWithdrawal(ctx, 1, "@alice", 20)
		require.NoError(t, err)
		second, err := svc.CreateWithdrawal(ctx, 1, "@alice", 20)
		require.NoError(t, err)

		assert.NotEqual(t, first.WithdrawalID, second.WithdrawalID)
	})
}

func TestApproveWithdrawal(t *testing.T) {
	ctx := context.Background()

	t.Run("approval keeps the escrowed debit", func(t *testing.T) {
		repo := newFakeRepo()
		notifier := &recordingNotifier{}
		svc := newTestService(repo, notifier)
		seedUser(repo, 1, 100)

		created, err := svc.CreateWithdrawal(ctx, 1, "@alice", 40)
		require.NoError(t, err)

		approved, err := svc.ApproveWithdrawal(ctx, created.WithdrawalID)

		require.NoError(t, err)
		assert.Equal(t, models.WithdrawalStatusApproved, approved.Status)
		assert.NotNil(t, approved.ProcessedAt)
		assert.Equal(t, int64(60), userBalance(repo, 1))
		assert.Equal(t, []string{created.WithdrawalID}, notifier.approved)
	})

	t.Run("second approval is a reported no-op", func(t *testing.T) {
		repo := newFakeRepo()
		notifier := &recordingNotifier{}
		svc := newTestService(repo, notifier)
		seedUser(repo, 1, 100)

		created, err := svc.CreateWithdrawal(ctx, 1, "@alice", 40)
		require.NoError(t, err)

		_, err = svc.ApproveWithdrawal(ctx, created.WithdrawalID)
		require.NoError(t, err)
		_, err = svc.ApproveWithdrawal(ctx, created.WithdrawalID)

		assert.ErrorIs(t, err, ErrWithdrawalNotPending)
		assert.Equal(t, int64(60), userBalance(repo, 1))
		assert.Len(t, notifier.approved, 1)
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &recordingNotifier{})

		_, err := svc.ApproveWithdrawal(ctx, "WD-missing")

		assert.ErrorIs(t, err, ErrWithdrawalNotFound)
	})
}

func TestRejectWithdrawal(t *testing.T) {
	ctx := context.Background()

	t.Run("rejection refunds the escrowed amount", func(t *testing.T) {
		repo := newFakeRepo()
		notifier := &recordingNotifier{}
		svc := newTestService(repo, notifier)
		seedUser(repo, 1, 100)

		created, err := svc.CreateWithdrawal(ctx, 1, "@alice", 40)
		require.NoError(t, err)
		require.Equal(t, int64(60), userBalance(repo, 1))

		rejected, err := svc.RejectWithdrawal(ctx, created.WithdrawalID)

		require.NoError(t, err)
		assert.Equal(t, models.WithdrawalStatusRejected, rejected.Status)
		assert.Equal(t, int64(100), userBalance(repo, 1))
		assert.Equal(t, []string{created.WithdrawalID}, notifier.rejected)
	})

	t.Run("second rejection does not double-refund", func(t *testing.T) {
		repo := newFakeRepo()
		notifier := &recordingNotifier{}
		svc := newTestService(repo, notifier)
		seedUser(repo, 1, 100)

		created, err := svc.CreateWithdrawal(ctx, 1, "@alice", 40)
		require.NoError(t, err)

		_, err = svc.RejectWithdrawal(ctx, created.WithdrawalID)
		require.NoError(t, err)
		_, err = svc.RejectWithdrawal(ctx, created.WithdrawalID)

		assert.ErrorIs(t, err, ErrWithdrawalNotPending)
		assert.Equal(t, int64(100), userBalance(repo, 1))
		assert.Len(t, notifier.rejected, 1)
	})

	t.Run("rejecting an approved withdrawal fails", func(t *testing.T) {
		repo := newFakeRepo()
		notifier := &recordingNotifier{}
		svc := newTestService(repo, notifier)
		seedUser(repo, 1, 100)

		created, err := svc.CreateWithdrawal(ctx, 1, "@alice", 40)
		require.NoError(t, err)

		_, err = svc.ApproveWithdrawal(ctx, created.WithdrawalID)
		require.NoError(t, err)
		_, err = svc.RejectWithdrawal(ctx, created.WithdrawalID)

		assert.ErrorIs(t, err, ErrWithdrawalNotPending)
		assert.Equal(t, int64(60), userBalance(repo, 1))
		assert.Empty(t, notifier.rejected)
	})
}

func TestWithdrawalStats(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepo()
	svc := newTestService(repo, &recordingNotifier{})
	seedUser(repo, 1, 1000)

	first, err := svc.CreateWithdrawal(ctx, 1, "@alice", 20)
	require.NoError(t, err)
	second, err := svc.CreateWithdrawal(ctx, 1, "@alice", 20)
	require.NoError(t, err)
	_, err = svc.CreateWithdrawal(ctx, 1, "@alice", 20)
	require.NoError(t, err)

	_, err = svc.ApproveWithdrawal(ctx, first.WithdrawalID)
	require.NoError(t, err)
	_, err = svc.RejectWithdrawal(ctx, second.WithdrawalID)
	require.NoError(t, err)

	stats, err := svc.WithdrawalStats(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(1), stats.Approved)
	assert.Equal(t, int64(1), stats.Rejected)
}
