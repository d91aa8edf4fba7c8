package config

import (
	"os"
	"strconv"
	"time"
)

// Store backends selectable through the DB_TYPE switch. Services and
// middleware never see which one is active.
const (
	StoreTransient = "transient"
	StorePostgres  = "postgres"
	StoreRedis     = "redis"
)

func GetStoreBackend() string {
	env := os.Getenv("DB_TYPE")
	if env != "" {
		return env
	}
	return StoreTransient
}

// GetQueryTimeout bounds every usecase-level storage call.
func GetQueryTimeout() time.Duration {
	env := os.Getenv("QUERY_TIMEOUT_SECONDS")
	if env != "" {
		if seconds, err := strconv.Atoi(env); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 5 * time.Second
}
