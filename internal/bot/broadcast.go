package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleBroadcastMessage delivers the admin's message to every registered
// user. Sends proceed one by one, individual failures are logged and never
// abort the remaining sends; the progress message is edited as the run
// advances.
func (b *Bot) handleBroadcastMessage(ctx context.Context, chatID, userID int64, text string) {
	if !b.isAdmin(userID) {
		return
	}

	b.dialogs.Clear(ctx, userID)

	ids, err := b.service.ListUserIDs(ctx)
	if err != nil {
		b.logger.Errorf("Failed to list users for broadcast: %v", err)
		b.sendMessage(chatID, "*❌ Failed to start broadcast.*", nil)
		return
	}

	total := len(ids)
	progress := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"*📤 Broadcasting...*\n\n"+
			"*👥 Total Users:* *%d*\n"+
			"*✅ Sent:* *0*\n"+
			"*❌ Failed:* *0*",
		total,
	))
	progress.ParseMode = tgbotapi.ModeMarkdown
	progressMsg, err := b.API.Send(progress)
	if err != nil {
		b.logger.Errorf("Failed to send broadcast progress message: %v", err)
	}

	sent, failed := 0, 0
	for i, id := range ids {
		msg := tgbotapi.NewMessage(id, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := b.API.Send(msg); err != nil {
			failed++
			b.logger.Errorf("Failed to send broadcast to %d: %v", id, err)
		} else {
			sent++
		}

		if progressMsg.MessageID != 0 && ((i+1)%10 == 0 || i+1 == total) {
			edit := tgbotapi.NewEditMessageText(chatID, progressMsg.MessageID, fmt.Sprintf(
				"*📤 Broadcasting...*\n\n"+
					"*👥 Total Users:* *%d*\n"+
					"*✅ Sent:* *%d*\n"+
					"*❌ Failed:* *%d*\n"+
					"*📊 Progress:* *%d/%d*",
				total, sent, failed, i+1, total,
			))
			edit.ParseMode = tgbotapi.ModeMarkdown
			if _, err := b.API.Send(edit); err != nil {
				b.logger.Debugf("Failed to edit broadcast progress: %v", err)
			}
		}
	}

	rate := 0.0
	if total > 0 {
		rate = float64(sent) / float64(total) * 100
	}
	final := fmt.Sprintf(
		"*✅ Broadcast Completed!*\n\n"+
			"*📊 Results:*\n"+
			"• *👥 Total Users:* *%d*\n"+
			"• *✅ Successfully Sent:* *%d*\n"+
			"• *❌ Failed:* *%d*\n"+
			"• *📈 Success Rate:* *%.1f%%*",
		total, sent, failed, rate,
	)
	if progressMsg.MessageID != 0 {
		edit := tgbotapi.NewEditMessageText(chatID, progressMsg.MessageID, final)
		edit.ParseMode = tgbotapi.ModeMarkdown
		if _, err := b.API.Send(edit); err != nil {
			b.logger.Errorf("Failed to send broadcast report: %v", err)
		}
	} else {
		b.sendMessage(chatID, final, nil)
	}
}
