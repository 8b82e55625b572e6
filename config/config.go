package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	TelegramBotToken string        `mapstructure:"TELEGRAM_BOT_TOKEN"`
	BotUsername      string        `mapstructure:"BOT_USERNAME"`
	AdminChatID      int64         `mapstructure:"ADMIN_CHAT_ID"`
	DB_URL           string        `mapstructure:"DB_URL"`
	RedisAddr        string        `mapstructure:"REDIS_ADDR"`
	RedisPassword    string        `mapstructure:"REDIS_PASSWORD"`
	DailyBonus       int64         `mapstructure:"DAILY_BONUS"`
	ReferralBonus    int64         `mapstructure:"REFERRAL_BONUS"`
	MinWithdrawal    int64         `mapstructure:"MIN_WITHDRAWAL"`
	BonusCooldown    time.Duration `mapstructure:"BONUS_COOLDOWN"`
	APITimeout       time.Duration `mapstructure:"API_TIMEOUT"`
}

func LoadConfig(path string) (config Config, err error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return config, fmt.Errorf("failed to resolve config path: %w", err)
	}

	viper.AddConfigPath(filepath.Dir(absPath))
	viper.SetConfigName(filepath.Base(absPath))
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("DAILY_BONUS", 1)
	viper.SetDefault("REFERRAL_BONUS", 1)
	viper.SetDefault("MIN_WITHDRAWAL", 15)
	viper.SetDefault("BONUS_COOLDOWN", 24*time.Hour)
	viper.SetDefault("API_TIMEOUT", 10*time.Second)

	if err := viper.ReadInConfig(); err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}

	if err := viper.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}
