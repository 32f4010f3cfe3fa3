package app

import (
	"strconv"

	"uiforge/internal/common/logging"
	"uiforge/internal/redis"
)

func (app *App) initializeRedis() error {
	if app.Config.RedisAddress == "" {
		app.Logger.Info("Redis: Not configured (session cache mirror and distributed rate limiting disabled)")
		return nil
	}

	redisDB, _ := strconv.Atoi(app.Config.RedisDB)
	redisPoolSize, _ := strconv.Atoi(app.Config.RedisPoolSize)

	redisClient, err := redis.NewClient(&redis.Config{
		Address:  app.Config.RedisAddress,
		Password: app.Config.RedisPassword,
		DB:       redisDB,
		PoolSize: redisPoolSize,
	})
	if err != nil {
		return err
	}

	app.RedisClient = redisClient
	app.Logger.Info("Redis: Connected",
		logging.Field{Key: "address", Value: app.Config.RedisAddress},
		logging.Field{Key: "session_cache_ttl", Value: app.Config.SessionCacheTTL.String()})
	return nil
}
