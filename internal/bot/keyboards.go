package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rajx/stars-bot/internal/models"
)

func getMainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎁 Bonus", "bonus"),
			tgbotapi.NewInlineKeyboardButtonData("💰 Balance", "balance"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👥 Refer & Earn", "refer"),
			tgbotapi.NewInlineKeyboardButtonData("💸 Withdraw", "withdraw"),
		),
	)
}

func getBonusMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎁 Claim Bonus", "claim_bonus"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Menu", "main_menu"),
		),
	)
}

func getBackButton() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", "main_menu"),
		),
	)
}

func getAdminMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👥 Users", "admin_users"),
			tgbotapi.NewInlineKeyboardButtonData("💸 Withdrawals", "admin_withdrawals"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Add Button", "admin_add_button"),
			tgbotapi.NewInlineKeyboardButtonData("➖ Remove Button", "admin_remove_button"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📢 Broadcast", "admin_broadcast"),
			tgbotapi.NewInlineKeyboardButtonData("📋 Channel List", "admin_channels"),
		),
	)
}

func getAdminBackButton() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", "admin_menu"),
		),
	)
}

// getChannelJoinKeyboard lists the sponsor channels two per row, with the
// verify button on its own row at the bottom.
func getChannelJoinKeyboard(channels []models.Channel) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(channels)/2+1)

	for i := 0; i < len(channels); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonURL("📢 "+channels[i].ButtonName, channels[i].Link),
		}
		if i+1 < len(channels) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonURL("📢 "+channels[i+1].ButtonName, channels[i+1].Link))
		}
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✅ Verify Join", "verify_join"),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func getWithdrawalAdminButtons(withdrawalID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Approve", "approve_"+withdrawalID),
			tgbotapi.NewInlineKeyboardButtonData("❌ Reject", "reject_"+withdrawalID),
		),
	)
}

func getRemoveChannelButtons(channels []models.Channel) tgbotapi.InlineKeyboardMarkup {
	if len(channels) == 0 {
		return getAdminBackButton()
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(channels)+1)
	for _, channel := range channels {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				"❌ Remove "+channel.ButtonName,
				fmt.Sprintf("remove_channel_%d", channel.ID),
			),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Back", "admin_menu"),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
