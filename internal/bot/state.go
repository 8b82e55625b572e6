package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rajx/stars-bot/utils"
	"github.com/redis/go-redis/v9"
)

// Dialog kinds. The stage a user is in is always an explicit tag, never
// inferred from the text they sent.
const (
	dialogAwaitWithdrawUsername = "await_withdraw_username"
	dialogAwaitWithdrawAmount   = "await_withdraw_amount"
	dialogAwaitChannelLink      = "await_channel_link"
	dialogAwaitButtonName       = "await_button_name"
	dialogAwaitBroadcast        = "await_broadcast"
)

// dialogTTL bounds how long an abandoned dialog stays around before it
// expires on its own.
const dialogTTL = 15 * time.Minute

type DialogState struct {
	Kind    string `json:"kind"`
	Payload string `json:"payload,omitempty"`
}

// DialogStore keeps the per-user pending-input state in redis with a TTL,
// so an abandoned dialog clears itself.
type DialogStore struct {
	rdb    *redis.Client
	logger *utils.Logger
}

func NewDialogStore(rdb *redis.Client, logger *utils.Logger) *DialogStore {
	return &DialogStore{rdb: rdb, logger: logger}
}

func dialogKey(userID int64) string {
	return fmt.Sprintf("dialog:%d", userID)
}

func (s *DialogStore) Set(ctx context.Context, userID int64, state DialogState) {
	data, err := json.Marshal(state)
	if err != nil {
		s.logger.Errorf("Failed to marshal dialog state for user %d: %v", userID, err)
		return
	}

	if err := s.rdb.Set(ctx, dialogKey(userID), data, dialogTTL).Err(); err != nil {
		s.logger.Errorf("Failed to set dialog state for user %d: %v", userID, err)
	}
}

func (s *DialogStore) Get(ctx context.Context, userID int64) DialogState {
	data, err := s.rdb.Get(ctx, dialogKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Errorf("Failed to get dialog state for user %d: %v", userID, err)
		}
		return DialogState{}
	}

	var state DialogState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Errorf("Failed to unmarshal dialog state for user %d: %v", userID, err)
		return DialogState{}
	}
	return state
}

func (s *DialogStore) Clear(ctx context.Context, userID int64) {
	if err := s.rdb.Del(ctx, dialogKey(userID)).Err(); err != nil {
		s.logger.Errorf("Failed to clear dialog state for user %d: %v", userID, err)
	}
}
