package main

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Replaced with a production logger in main; tests run against the nop.
var logger = zap.NewNop()

func main() {
	// .env is optional
	envErr := godotenv.Load()

	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	logger = l
	defer logger.Sync()

	if envErr != nil {
		logger.Debug("no .env file loaded", zap.Error(envErr))
	}

	listenAddr := getenv("LISTEN_ADDR", ":8080")
	secret := []byte(getenv("JWT_SECRET", "dev-secret"))

	store := NewMemorySessionStore()
	sessions := NewSessionManager(store, secret, dummyProducts, seedOrders())
	server := NewAPIServer(listenAddr, sessions)

	if err := server.Run(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
