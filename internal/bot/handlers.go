package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rajx/stars-bot/internal/models"
)

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil {
		return
	}

	userID := message.From.ID
	chatID := message.Chat.ID
	text := message.Text

	var referredBy *int64
	if strings.HasPrefix(text, "/start") {
		referredBy = parseReferralPayload(text)
	}

	user, err := b.service.RegisterUser(ctx, userID, message.From.UserName, message.From.FirstName, referredBy)
	if err != nil {
		b.logger.Errorf("Failed to register user %d: %v", userID, err)
		b.sendMessage(chatID, "❌ Something went wrong. Please try again later.", nil)
		return
	}

	dialog := b.dialogs.Get(ctx, userID)
	switch dialog.Kind {
	case dialogAwaitWithdrawUsername:
		b.handleWithdrawUsername(ctx, chatID, userID, text)
		return
	case dialogAwaitWithdrawAmount:
		b.handleWithdrawAmount(ctx, chatID, userID, dialog.Payload, text)
		return
	case dialogAwaitChannelLink:
		b.handleChannelLink(ctx, chatID, userID, text)
		return
	case dialogAwaitButtonName:
		b.handleButtonName(ctx, chatID, userID, dialog.Payload, text)
		return
	case dialogAwaitBroadcast:
		b.handleBroadcastMessage(ctx, chatID, userID, text)
		return
	}

	switch {
	case strings.HasPrefix(text, "/start"):
		b.handleStart(ctx, chatID, user)
	case text == "/adminhelp":
		b.handleAdminHelp(chatID, userID)
	}
}

// parseReferralPayload extracts the referrer id from "/start <id>".
func parseReferralPayload(text string) *int64 {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return nil
	}
	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

func (b *Bot) handleStart(ctx context.Context, chatID int64, user *models.User) {
	channels, err := b.service.ListChannels(ctx)
	if err != nil {
		b.logger.Errorf("Failed to list channels: %v", err)
		b.sendMessage(chatID, "❌ Something went wrong. Please try again later.", nil)
		return
	}

	if len(channels) > 0 {
		compliant, _, err := b.verifier.CheckMembership(ctx, user.TelegramID)
		if err != nil {
			b.logger.Errorf("Membership check failed for user %d: %v", user.TelegramID, err)
		}
		if err != nil || !compliant {
			welcome := fmt.Sprintf(
				"*🌟 Welcome to RajXStars Bot! 🌟*\n\n"+
					"*👋 Hey %s!*\n\n"+
					"*✨ Join our channels to unlock:*\n"+
					"• *🎁 Daily bonus rewards*\n"+
					"• *💰 Referral earnings*\n"+
					"• *💸 Easy withdrawals*\n\n"+
					"*📢 Please join all channels below and click verify:*",
				user.FirstName,
			)
			b.sendMessage(chatID, welcome, getChannelJoinKeyboard(channels))
			return
		}
	}

	b.sendMessage(chatID, mainMenuText(user.FirstName), getMainMenu())
}

func mainMenuText(firstName string) string {
	return fmt.Sprintf(
		"*🎉 Welcome Back, %s! 🎉*\n\n"+
			"*⭐ RajXStars Bot* - *Your Gateway to Earning! ⭐*\n\n"+
			"*🚀 What you can do:*\n"+
			"• *🎁 Claim daily bonuses*\n"+
			"• *💰 Check your balance*\n"+
			"• *👥 Refer friends & earn*\n"+
			"• *💸 Withdraw your earnings*\n\n"+
			"*✨ Choose an option below to get started:*",
		firstName,
	)
}

func (b *Bot) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	data := callback.Data
	userID := callback.From.ID

	switch {
	case data == "verify_join":
		b.handleVerifyJoin(ctx, callback)
	case data == "bonus":
		b.handleBonusMenu(callback)
	case data == "claim_bonus":
		b.handleClaimBonus(ctx, callback)
	case data == "balance":
		b.handleShowBalance(ctx, callback)
	case data == "refer":
		b.handleReferMenu(ctx, callback)
	case data == "withdraw":
		b.handleWithdrawMenu(ctx, callback)
	case data == "main_menu":
		b.answerCallback(callback.ID, "")
		b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, mainMenuText(callback.From.FirstName), markupPtr(getMainMenu()))
	default:
		// Everything else is admin-only; invocations by anyone else are
		// silently ignored.
		if !b.isAdmin(userID) {
			return
		}
		b.handleAdminCallback(ctx, callback)
	}
}

func markupPtr(markup tgbotapi.InlineKeyboardMarkup) *tgbotapi.InlineKeyboardMarkup {
	return &markup
}

func (b *Bot) handleVerifyJoin(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	compliant, notJoined, err := b.verifier.CheckMembership(ctx, callback.From.ID)
	if err != nil {
		b.answerCallbackAlert(callback.ID, "❌ Verification failed. Please try again.")
		return
	}

	if !compliant {
		b.answerCallbackAlert(callback.ID, "❌ Please join these channels first: "+strings.Join(notJoined, ", "))
		return
	}

	b.answerCallback(callback.ID, "")
	welcome := fmt.Sprintf(
		"*🎉 Congratulations %s! 🎉*\n\n"+
			"*✅ Successfully verified!*\n\n"+
			"*⭐ Welcome to RajXStars Bot ⭐*\n\n"+
			"*🌟 Let's start earning together!*",
		callback.From.FirstName,
	)
	b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, welcome, markupPtr(getMainMenu()))
}

func (b *Bot) handleBonusMenu(callback *tgbotapi.CallbackQuery) {
	b.answerCallback(callback.ID, "")
	text := fmt.Sprintf(
		"*🔥 Claim Your Bonus 🔥*\n\n"+
			"*🎁 Daily Bonus Available:* *%d⭐*\n\n"+
			"*🕑 Claim Bonus Again In 24 Hours*\n\n"+
			"*🎊 Ready to claim your reward?*",
		b.service.DailyBonus(),
	)
	b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, text, markupPtr(getBonusMenu()))
}

func (b *Bot) handleClaimBonus(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	userID := callback.From.ID

	claimed, err := b.service.ClaimDailyBonus(ctx, userID)
	if err != nil {
		b.logger.Errorf("Failed to claim bonus for user %d: %v", userID, err)
		b.answerCallbackAlert(callback.ID, "❌ Something went wrong. Please try again.")
		return
	}

	if !claimed {
		remaining, err := b.service.RemainingBonusCooldown(ctx, userID)
		if err != nil {
			b.logger.Errorf("Failed to get bonus cooldown for user %d: %v", userID, err)
		}
		b.answerCallbackAlert(callback.ID, fmt.Sprintf(
			"🎁 RajXStars Bot\n⏳ You have already claimed your bonus!\n⏱️ Wait: %s",
			formatCooldown(remaining),
		))
		return
	}

	b.answerCallback(callback.ID, "")
	text := fmt.Sprintf(
		"*🎉 Congratulations! 🎉*\n\n"+
			"*⭐ You received %d⭐ as Daily Bonus! ⭐*\n\n"+
			"*⏳ Come back after 24 hours to claim again.*",
		b.service.DailyBonus(),
	)
	back := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", "bonus"),
		),
	)
	b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, text, &back)
}

func formatCooldown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02dh %02dm %02ds", total/3600, total%3600/60, total%60)
}

func (b *Bot) handleShowBalance(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	user, err := b.service.GetUser(ctx, callback.From.ID)
	if err != nil || user == nil {
		b.answerCallbackAlert(callback.ID, "❌ User not found!")
		return
	}

	b.answerCallback(callback.ID, "")
	now := time.Now().UTC()
	text := fmt.Sprintf(
		"*👤 Name:* *%s*\n"+
			"*🆔 User ID:* *%d*\n\n"+
			"*💵 Balance:* *%d⭐*\n\n"+
			"*⌚️ Update On:* *%s*\n"+
			"*📆 Date:* *%s*",
		user.FirstName, user.TelegramID, user.Balance,
		now.Format("03:04 PM"), now.Format("2006-01-02"),
	)
	b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, text, markupPtr(getBackButton()))
}

func (b *Bot) handleReferMenu(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	user, err := b.service.GetUser(ctx, callback.From.ID)
	if err != nil || user == nil {
		b.answerCallbackAlert(callback.ID, "❌ User not found!")
		return
	}

	b.answerCallback(callback.ID, "")
	text := fmt.Sprintf(
		"*🔥 Refer and Earn 🔥*\n\n"+
			"*✅ Per Refer:* *%d⭐*\n"+
			"*👥 Your Total Referrals:* *%d*\n\n"+
			"*🔗 Your Referral Link:*\n"+
			"`https://t.me/%s?start=%d`\n\n"+
			"*📈 Start sharing and earning now!*",
		b.service.ReferralBonus(), user.TotalReferrals,
		b.config.BotUsername, user.TelegramID,
	)
	b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, text, markupPtr(getBackButton()))
}
