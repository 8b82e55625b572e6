package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rajx/stars-bot/config"
	"github.com/rajx/stars-bot/internal/service"
	"github.com/rajx/stars-bot/internal/verifier"
	"github.com/rajx/stars-bot/utils"
)

type Bot struct {
	API      *tgbotapi.BotAPI
	service  *service.Service
	verifier *verifier.Verifier
	dialogs  *DialogStore
	logger   *utils.Logger
	config   *config.Config
}

func NewBot(
	api *tgbotapi.BotAPI,
	service *service.Service,
	verifier *verifier.Verifier,
	dialogs *DialogStore,
	logger *utils.Logger,
	config *config.Config,
) *Bot {
	return &Bot{
		API:      api,
		service:  service,
		verifier: verifier,
		dialogs:  dialogs,
		logger:   logger,
		config:   config,
	}
}

func (b *Bot) Start() {
	b.logger.Info("Starting bot...")
	updates := b.API.GetUpdatesChan(tgbotapi.NewUpdate(0))
	for update := range updates {
		if update.CallbackQuery != nil {
			go b.handleCallbackQuery(context.Background(), update.CallbackQuery)
			continue
		}
		if update.Message != nil {
			go b.handleMessage(context.Background(), update.Message)
		}
	}
}

func (b *Bot) isAdmin(userID int64) bool {
	return userID == b.config.AdminChatID
}

func (b *Bot) sendMessage(chatID int64, text string, replyMarkup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if replyMarkup != nil {
		msg.ReplyMarkup = replyMarkup
	}
	if _, err := b.API.Send(msg); err != nil {
		b.logger.Errorf("Failed to send message to %d: %v", chatID, err)
	}
}

func (b *Bot) editMessage(chatID int64, messageID int, text string, replyMarkup *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	edit.ReplyMarkup = replyMarkup
	if _, err := b.API.Send(edit); err != nil {
		b.logger.Errorf("Failed to edit message %d in chat %d: %v", messageID, chatID, err)
	}
}

func (b *Bot) answerCallback(callbackID, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.API.Request(callback); err != nil {
		b.logger.Errorf("Failed to answer callback: %v", err)
	}
}

func (b *Bot) answerCallbackAlert(callbackID, text string) {
	callback := tgbotapi.NewCallbackWithAlert(callbackID, text)
	if _, err := b.API.Request(callback); err != nil {
		b.logger.Errorf("Failed to answer callback: %v", err)
	}
}
