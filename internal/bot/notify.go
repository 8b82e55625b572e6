package bot

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rajx/stars-bot/internal/models"
	"github.com/rajx/stars-bot/utils"
)

// TelegramNotifier implements service.Notifier on top of the bot API.
// Every send is best-effort: a delivery failure is logged and never rolls
// back the ledger mutation that triggered it.
type TelegramNotifier struct {
	api         *tgbotapi.BotAPI
	adminChatID int64
	logger      *utils.Logger
}

func NewNotifier(api *tgbotapi.BotAPI, adminChatID int64, logger *utils.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		api:         api,
		adminChatID: adminChatID,
		logger:      logger,
	}
}

func (n *TelegramNotifier) send(chatID int64, text string, replyMarkup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if replyMarkup != nil {
		msg.ReplyMarkup = replyMarkup
	}
	if _, err := n.api.Send(msg); err != nil {
		n.logger.Errorf("Failed to deliver notification to %d: %v", chatID, err)
	}
}

func (n *TelegramNotifier) WithdrawalCreated(w *models.Withdrawal) {
	userText := fmt.Sprintf(
		"*✅ Order successfully placed!*\n\n"+
			"*🆔 Order ID:* *%s*\n"+
			"*🎉 Your request has been submitted to admin.*\n"+
			"*⏳ You'll be notified once it's fulfilled.*\n\n"+
			"*📋 Order Details:*\n"+
			"• *👤 Username:* *%s*\n"+
			"• *⭐ Amount:* *%d⭐*\n"+
			"• *📅 Date:* *%s*",
		w.WithdrawalID, w.Username, w.Amount, w.CreatedAt.Format("2006-01-02 15:04"),
	)
	n.send(w.UserID, userText, nil)

	adminText := fmt.Sprintf(
		"*📥 New Withdrawal Request*\n\n"+
			"*👤 User:* *%s*\n"+
			"*🆔 User ID:* *%d*\n"+
			"*⭐ Total:* *%d⭐*\n"+
			"*🔖 Order ID:* *%s*\n"+
			"*📅 Date:* *%s*",
		w.Username, w.UserID, w.Amount, w.WithdrawalID, w.CreatedAt.Format("2006-01-02 15:04"),
	)
	n.send(n.adminChatID, adminText, getWithdrawalAdminButtons(w.WithdrawalID))
}

func (n *TelegramNotifier) WithdrawalApproved(w *models.Withdrawal) {
	text := fmt.Sprintf(
		"*🎉 Withdrawal Successful! 🎉*\n\n"+
			"*✅ Your withdrawal of %d⭐ Stars has been successful. Enjoy!*\n\n"+
			"*📋 Details:*\n"+
			"• *🆔 Order ID:* *%s*\n"+
			"• *⭐ Amount:* *%d⭐*\n"+
			"• *👤 Username:* *%s*\n"+
			"• *📅 Processed:* *%s*",
		w.Amount, w.WithdrawalID, w.Amount, w.Username, processedStamp(w),
	)
	n.send(w.UserID, text, nil)
}

func (n *TelegramNotifier) WithdrawalRejected(w *models.Withdrawal) {
	text := fmt.Sprintf(
		"*❌ Withdrawal Request Rejected*\n\n"+
			"*💰 Your withdrawal request was rejected. Stars have been refunded.*\n\n"+
			"*📋 Details:*\n"+
			"• *🆔 Order ID:* *%s*\n"+
			"• *⭐ Amount:* *%d⭐* *(Refunded)*\n"+
			"• *👤 Username:* *%s*\n"+
			"• *📅 Processed:* *%s*",
		w.WithdrawalID, w.Amount, w.Username, processedStamp(w),
	)
	n.send(w.UserID, text, nil)
}

func processedStamp(w *models.Withdrawal) string {
	if w.ProcessedAt != nil {
		return w.ProcessedAt.Format("2006-01-02 15:04")
	}
	return time.Now().UTC().Format("2006-01-02 15:04")
}
