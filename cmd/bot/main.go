package main

import (
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rajx/stars-bot/config"
	"github.com/rajx/stars-bot/db"
	"github.com/rajx/stars-bot/internal/bot"
	"github.com/rajx/stars-bot/internal/repository"
	"github.com/rajx/stars-bot/internal/service"
	"github.com/rajx/stars-bot/internal/verifier"
	"github.com/rajx/stars-bot/utils"
)

func main() {
	logger := utils.InitLogger()
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		logger.Fatal("Failed to load config: ", err)
	}

	database, err := db.ConnectDb(cfg.DB_URL, logger)
	if err != nil {
		logger.Fatal(err)
	}

	if err := db.Migrate(database, true, logger); err != nil {
		logger.Fatal(err)
	}

	rdb, err := db.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, logger)
	if err != nil {
		logger.Fatal("Failed to connect to redis: ", err)
	}

	// Bounded timeout on every bot API call, membership lookups included.
	api, err := tgbotapi.NewBotAPIWithClient(cfg.TelegramBotToken, tgbotapi.APIEndpoint, &http.Client{
		Timeout: cfg.APITimeout,
	})
	if err != nil {
		logger.Fatal("Failed to create bot API: ", err)
	}

	repo := repository.NewRepository(database, logger)
	notifier := bot.NewNotifier(api, cfg.AdminChatID, logger)
	svc := service.NewService(repo, notifier, &cfg, logger)
	ver := verifier.NewVerifier(api, svc, logger)
	dialogs := bot.NewDialogStore(rdb, logger)

	b := bot.NewBot(api, svc, ver, dialogs, logger, &cfg)
	b.Start()
}
