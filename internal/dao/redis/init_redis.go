package redis

import (
	"context"
	"fmt"
	"time"

	"pulse_chat_server/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Init connects to redis and returns the cache service. Fatal on
// failure; the online-user set and token store live here.
func Init() *RedisCache {
	conf := config.GetConfig().RedisConfig

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", conf.Host, conf.Port),
		Password: conf.Password,
		DB:       conf.Db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		zap.L().Fatal("redis connect failed", zap.Error(err))
	}

	return NewRedisCache(client, conf.WorkerNum, conf.TaskChanSize)
}
