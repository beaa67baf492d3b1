package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/unoduel/server/database"
	"github.com/unoduel/server/network"
	"github.com/unoduel/server/service"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		logrus.SetLevel(lvl)
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	store := pickStore()
	seed := time.Now().UnixNano()
	if raw := os.Getenv("RNG_SEED"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			seed = v
		}
	}
	svc := service.New(store, seed)
	hub := network.NewHub()
	svc.Notifier = hub

	addr := ":" + getEnv("PORT", "8080")
	if err := network.NewServer(svc, hub).Serve(addr); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}

// pickStore prefers Redis when an address is configured and falls
// back to the in-process store, which loses games on restart.
func pickStore() database.Store {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		logrus.Warn("REDIS_ADDR unset, using in-memory store")
		return database.NewMemoryStore()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       atoiDefault(os.Getenv("REDIS_DB"), 0),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Fatal("redis unreachable")
	}
	logrus.WithField("addr", addr).Info("connected to redis")
	return database.NewRedisStore(client)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDefault(raw string, def int) int {
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	return def
}
