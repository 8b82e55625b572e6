package verifier

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rajx/stars-bot/internal/models"
	"github.com/rajx/stars-bot/utils"
)

// MemberStatusGetter is the slice of the bot API the verifier needs.
// *tgbotapi.BotAPI satisfies it.
type MemberStatusGetter interface {
	GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
}

// ChannelSource lists the sponsor channels a user must have joined.
type ChannelSource interface {
	ListChannels(ctx context.Context) ([]models.Channel, error)
}

type Verifier struct {
	api      MemberStatusGetter
	channels ChannelSource
	logger   *utils.Logger
}

func NewVerifier(api MemberStatusGetter, channels ChannelSource, logger *utils.Logger) *Verifier {
	return &Verifier{
		api:      api,
		channels: channels,
		logger:   logger,
	}
}

// CheckMembership reports whether the user has joined every configured
// sponsor channel, plus the button names of the channels they are missing.
// Every channel is checked even after a violation is found, so the caller
// gets the complete missing list. A lookup failure for one channel marks
// that channel as missing and never aborts the rest of the check.
func (v *Verifier) CheckMembership(ctx context.Context, userID int64) (bool, []string, error) {
	channels, err := v.channels.ListChannels(ctx)
	if err != nil {
		return false, nil, err
	}
	if len(channels) == 0 {
		return true, []string{}, nil
	}

	v.logger.Infof("Checking membership for user %d in %d channels", userID, len(channels))

	notJoined := make([]string, 0)
	for _, channel := range channels {
		handle := NormalizeChannelHandle(channel.Link)

		member, err := v.api.GetChatMember(tgbotapi.GetChatMemberConfig{
			ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
				SuperGroupUsername: handle,
				UserID:             userID,
			},
		})
		if err != nil {
			// Fail closed: an unresolvable channel counts as not joined.
			v.logger.Errorf("Channel check error (%s) for %s: %v", classifyLookupError(err), handle, err)
			notJoined = append(notJoined, channel.ButtonName)
			continue
		}

		if member.Status == "left" || member.Status == "kicked" {
			v.logger.Infof("User %d not in channel %s: %s", userID, handle, member.Status)
			notJoined = append(notJoined, channel.ButtonName)
		}
	}

	return len(notJoined) == 0, notJoined, nil
}

// classifyLookupError maps a bot API failure to a short kind for the logs.
// The recognized kinds mirror the errors the API reports when a user is not
// a participant or a channel handle cannot be resolved; everything else is
// unexpected but still treated as non-membership by the caller.
func classifyLookupError(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "user not found"), strings.Contains(msg, "participant_id_invalid"):
		return "not a participant"
	case strings.Contains(msg, "chat not found"), strings.Contains(msg, "channel_private"):
		return "channel private or missing"
	case strings.Contains(msg, "username"):
		return "invalid handle"
	default:
		return "unexpected"
	}
}
