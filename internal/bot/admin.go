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

const adminMenuText = "*👑 Welcome Boss! 👑*\n\n" +
	"*🔧 Here Is Your Admin System*\n\n" +
	"*🎛️ Control Panel Features:*\n" +
	"• *👥 Manage users*\n" +
	"• *💸 Handle withdrawals*\n" +
	"• *➕ Add channel buttons*\n" +
	"• *➖ Remove channel buttons*\n" +
	"• *📢 Broadcast messages*\n" +
	"• *📋 View channel list*\n\n" +
	"*⚡ Choose an option below:*"

func (b *Bot) handleAdminHelp(chatID, userID int64) {
	if !b.isAdmin(userID) {
		return
	}
	b.sendMessage(chatID, adminMenuText, getAdminMenu())
}

func (b *Bot) handleAdminCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	data := callback.Data

	switch {
	case data == "admin_menu":
		b.answerCallback(callback.ID, "")
		b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, adminMenuText, markupPtr(getAdminMenu()))
	case data == "admin_users":
		b.handleAdminUsers(ctx, callback)
	case data == "admin_withdrawals":
		b.handleAdminWithdrawals(ctx, callback)
	case data == "admin_add_button":
		b.handleAdminAddButton(ctx, callback)
	case data == "admin_remove_button":
		b.handleAdminRemoveButton(ctx, callback)
	case data == "admin_broadcast":
		b.handleAdminBroadcast(ctx, callback)
	case data == "admin_channels":
		b.handleAdminChannels(ctx, callback)
	case strings.HasPrefix(data, "remove_channel_"):
		b.handleRemoveChannel(ctx, callback)
	case strings.HasPrefix(data, "approve_"):
		b.handleApproveWithdrawal(ctx, callback)
	case strings.HasPrefix(data, "reject_"):
		b.handleRejectWithdrawal(ctx, callback)
	}
}

func (b *Bot) handleAdminUsers(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	total, err := b.service.TotalUsers(ctx)
	if err != nil {
		b.logger.Errorf("Failed to count users: %v", err)
		b.answerCallbackAlert(callback.ID, "❌ Failed to load user statistics!")
		return
	}

	b.answerCallback(callback.ID, "")
	text := fmt.Sprintf(
		"*👥 User Statistics*\n\n"+
			"*📊 Total Users:* *%d*\n\n"+
			"*🔧 Admin Controls Available*",
		total,
	)
	b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, text, markupPtr(getAdminBackButton()))
}

func (b *Bot) handleAdminWithdrawals(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	stats, err := b.service.WithdrawalStats(ctx)
	if err != nil {
		b.logger.Errorf("Failed to load withdrawal stats: %v", err)
		b.answerCallbackAlert(callback.ID, "❌ Failed to load withdrawal statistics!")
		return
	}

	b.answerCallback(callback.ID, "")
	text := fmt.Sprintf(
		"*💸 Withdrawal Statistics*\n\n"+
			"*📊 Request Status:*\n"+
			"• *⏳ Pending:* *%d*\n"+
			"• *✅ Approved:* *%d*\n"+
			"• *❌ Rejected:* *%d*\n\n"+
			"*📈 Total Requests:* *%d*\n\n"+
			"*🔧 Manage withdrawals from notifications*",
		stats.Pending, stats.Approved, stats.Rejected,
		stats.Pending+stats.Approved+stats.Rejected,
	)
	b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, text, markupPtr(getAdminBackButton()))
}

func (b *Bot) handleAdminAddButton(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	b.answerCallback(callback.ID, "")
	text := "*➕ Add Channel Button*\n\n" +
		"*📢 Send channel link in format:*\n" +
		"*https://t.me/channel_name*\n\n" +
		"*📝 Please send the channel link:*"
	b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, text, nil)
	b.dialogs.Set(ctx, callback.From.ID, DialogState{Kind: dialogAwaitChannelLink})
}

func (b *Bot) handleAdminRemoveButton(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	channels, err := b.service.ListChannels(ctx)
	if err != nil {
		b.logger.Errorf("Failed to list channels: %v", err)
		b.answerCallbackAlert(callback.ID, "❌ Failed to load channels!")
		return
	}

	b.answerCallback(callback.ID, "")

	if len(channels) == 0 {
		text := "*➖ Remove Channel*\n\n" +
			"*❌ No channels found*\n\n" +
			"*📝 Add some channels first using 'Add Button' option*"
		b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, text, markupPtr(getAdminBackButton()))
		return
	}

	var sb strings.Builder
	sb.WriteString("*➖ Remove Channel*\n\n*📋 Channel List:*\n\n")
	for _, channel := range channels {
		sb.WriteString(fmt.Sprintf("*📢 %s*\n*🔗* %s\n*🆔 ID:* `%d`\n\n", channel.ButtonName, channel.Link, channel.ID))
	}
	b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, sb.String(), markupPtr(getRemoveChannelButtons(channels)))
}

func (b *Bot) handleAdminBroadcast(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	b.answerCallback(callback.ID, "")
	text := "*📢 Broadcast Message*\n\n" +
		"*📝 Send the message you want to broadcast to all users:*"
	b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, text, nil)
	b.dialogs.Set(ctx, callback.From.ID, DialogState{Kind: dialogAwaitBroadcast})
}

func (b *Bot) handleAdminChannels(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	channels, err := b.service.ListChannels(ctx)
	if err != nil {
		b.logger.Errorf("Failed to list channels: %v", err)
		b.answerCallbackAlert(callback.ID, "❌ Failed to load channels!")
		return
	}

	b.answerCallback(callback.ID, "")

	var text string
	if len(channels) == 0 {
		text = "*📄 Channel List*\n\n" +
			"*❌ No channels configured*\n\n" +
			"*📝 Use 'Add Button' to add channels*"
	} else {
		var sb strings.Builder
		sb.WriteString("*📄 Channel List*\n\n")
		for i, channel := range channels {
			sb.WriteString(fmt.Sprintf("*%d.* *📢 %s*\n", i+1, channel.ButtonName))
			sb.WriteString(fmt.Sprintf("*🔗* %s\n", channel.Link))
			sb.WriteString(fmt.Sprintf("*🆔 ID:* `%d`\n", channel.ID))
			sb.WriteString(fmt.Sprintf("*📅 Added:* *%s*\n\n", channel.AddedAt.Format("2006-01-02")))
		}
		text = sb.String()
	}
	b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, text, markupPtr(getAdminBackButton()))
}

func (b *Bot) handleRemoveChannel(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	rawID := strings.TrimPrefix(callback.Data, "remove_channel_")
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		b.answerCallbackAlert(callback.ID, "❌ Failed to remove channel!")
		return
	}

	if err := b.service.RemoveChannel(ctx, uint(id)); err != nil {
		b.answerCallbackAlert(callback.ID, "❌ Failed to remove channel!")
		return
	}

	b.answerCallbackAlert(callback.ID, "✅ Channel removed successfully!")
	b.handleAdminRemoveButton(ctx, callback)
}

func (b *Bot) handleChannelLink(ctx context.Context, chatID, userID int64, text string) {
	if !b.isAdmin(userID) {
		return
	}

	link := strings.TrimSpace(text)
	if !strings.HasPrefix(link, "https://t.me/") {
		b.sendMessage(chatID,
			"*❌ Invalid channel link format!*\n\n"+
				"*✅ Use format:* *https://t.me/channel_name*",
			nil)
		return
	}

	b.dialogs.Set(ctx, userID, DialogState{Kind: dialogAwaitButtonName, Payload: link})
	b.sendMessage(chatID,
		"*🏷️ Button Name:*\n\n"+
			"*📝 Enter the name for this button:*\n\n"+
			"*💡 Keep it short and clear!*",
		nil)
}

func (b *Bot) handleButtonName(ctx context.Context, chatID, userID int64, link, text string) {
	if !b.isAdmin(userID) {
		return
	}

	buttonName := strings.TrimSpace(text)
	if len(buttonName) > 30 {
		b.sendMessage(chatID, fmt.Sprintf(
			"*❌ Button name too long!*\n\n"+
				"*📏 Maximum:* *30 characters*\n"+
				"*📝 Current:* *%d characters*",
			len(buttonName)), nil)
		return
	}

	channel, err := b.service.AddChannel(ctx, link, buttonName)
	if err != nil {
		if errors.Is(err, service.ErrChannelExists) {
			b.sendMessage(chatID,
				"*❌ Channel already exists!*\n\n"+
					"*📝 This channel link is already added.*",
				nil)
		} else {
			b.logger.Errorf("Failed to add channel: %v", err)
			b.sendMessage(chatID, "*❌ Failed to add channel. Please try again.*", nil)
		}
		b.dialogs.Clear(ctx, userID)
		return
	}

	b.sendMessage(chatID, fmt.Sprintf(
		"*✅ Button Added Successfully!*\n\n"+
			"*📢 Channel:* *%s*\n"+
			"*🔗 Link:* *%s*\n"+
			"*🆔 Channel ID:* `%d`\n\n"+
			"*⚡ Users will need to join this channel to access the bot.*",
		channel.ButtonName, channel.Link, channel.ID), nil)
	b.dialogs.Clear(ctx, userID)
}

func (b *Bot) handleApproveWithdrawal(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	withdrawalID := strings.TrimPrefix(callback.Data, "approve_")

	if _, err := b.service.ApproveWithdrawal(ctx, withdrawalID); err != nil {
		b.answerCallbackAlert(callback.ID, "❌ Failed to approve withdrawal!")
		return
	}

	updated := callback.Message.Text + "\n\n*✅ APPROVED*"
	b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, updated, nil)
	b.answerCallbackAlert(callback.ID, "✅ Withdrawal approved!")
}

func (b *Bot) handleRejectWithdrawal(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	withdrawalID := strings.TrimPrefix(callback.Data, "reject_")

	if _, err := b.service.RejectWithdrawal(ctx, withdrawalID); err != nil {
		b.answerCallbackAlert(callback.ID, "❌ Failed to reject withdrawal!")
		return
	}

	updated := callback.Message.Text + "\n\n*❌ REJECTED & REFUNDED*"
	b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, updated, nil)
	b.answerCallbackAlert(callback.ID, "❌ Withdrawal rejected and refunded!")
}
