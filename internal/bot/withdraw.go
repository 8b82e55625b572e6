package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rajx/stars-bot/internal/service"
)

func (b *Bot) handleWithdrawMenu(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	userID := callback.From.ID
	user, err := b.service.GetUser(ctx, userID)
	if err != nil || user == nil {
		b.answerCallbackAlert(callback.ID, "❌ User not found!")
		return
	}

	b.answerCallback(callback.ID, "")

	if user.Balance < b.service.MinWithdrawal() {
		text := fmt.Sprintf(
			"*❌ Insufficient Balance!*\n\n"+
				"*💰 Your balance:* *%d⭐*\n"+
				"*🎯 Minimum required:* *%d⭐*\n\n"+
				"*📈 How to earn more:*\n"+
				"• *🎁 Claim daily bonus*\n"+
				"• *👥 Refer friends*\n\n"+
				"*💪 You're on the right track! Keep earning!*",
			user.Balance, b.service.MinWithdrawal(),
		)
		b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, text, markupPtr(getBackButton()))
		return
	}

	text := fmt.Sprintf(
		"*⚡ Make Sure To Send Stars To Real Username ⚡*\n\n"+
			"*🌟 RajXStars Withdrawal System 🌟*\n\n"+
			"*📋 Withdrawal Info:*\n"+
			"• *🎯 Minimum Order:* *%d⭐*\n"+
			"• *📥 Type:* *Telegram Stars*\n\n"+
			"*👤 Please enter the correct username* *👇*\n\n"+
			"*📝 Format:* *@username (with @)*",
		b.service.MinWithdrawal(),
	)
	b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, text, nil)
	b.dialogs.Set(ctx, userID, DialogState{Kind: dialogAwaitWithdrawUsername})
}

func (b *Bot) handleWithdrawUsername(ctx context.Context, chatID, userID int64, text string) {
	username := strings.TrimSpace(text)

	if !strings.HasPrefix(username, "@") || len(username) < 2 {
		b.sendMessage(chatID,
			"*❌ Invalid username format!*\n\n"+
				"*📝 Please use format:* *@username*",
			nil)
		return
	}

	b.dialogs.Set(ctx, userID, DialogState{Kind: dialogAwaitWithdrawAmount, Payload: username})

	prompt := fmt.Sprintf(
		"*⭐ Please enter the Stars amount now:*\n\n"+
			"*📋 Requirements:*\n"+
			"• *🎯 Minimum:* *%d⭐*\n"+
			"• *📊 Based on your balance*\n"+
			"• *🔢 Enter numbers only*",
		b.service.MinWithdrawal(),
	)
	b.sendMessage(chatID, prompt, nil)
}

func (b *Bot) handleWithdrawAmount(ctx context.Context, chatID, userID int64, username, text string) {
	amount, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		b.sendMessage(chatID,
			"*❌ Invalid amount!*\n\n"+
				"*🔢 Please enter numbers only*",
			nil)
		return
	}

	withdrawal, err := b.service.CreateWithdrawal(ctx, userID, username, amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBelowMinimum), errors.Is(err, service.ErrInvalidAmount):
			b.sendMessage(chatID, fmt.Sprintf(
				"*❌ Minimum withdrawal is %d⭐*\n\n"+
					"*📝 You entered:* *%d⭐*",
				b.service.MinWithdrawal(), amount), nil)
		case errors.Is(err, service.ErrInsufficientBalance):
			b.sendMessage(chatID, fmt.Sprintf(
				"*❌ Insufficient balance!*\n\n"+
					"*📝 Requested:* *%d⭐*",
				amount), nil)
		default:
			b.logger.Errorf("Failed to create withdrawal for user %d: %v", userID, err)
			b.sendMessage(chatID, "*❌ Something went wrong. Please try again later.*", nil)
			b.dialogs.Clear(ctx, userID)
		}
		return
	}

	// Confirmation to the user and the admin notification go through the
	// notifier on creation.
	b.logger.Infof("Withdrawal %s submitted by user %d", withdrawal.WithdrawalID, userID)
	b.dialogs.Clear(ctx, userID)
}
