package db

import (
	"context"

	"github.com/rajx/stars-bot/utils"
	"github.com/redis/go-redis/v9"
)

func ConnectRedis(addr, password string, log *utils.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	log.Info("✅ Redis connection successfully")
	return rdb, nil
}
