// Command token mints a bearer token for the API, signed with JWT_SECRET.
//
//	token [-role admin] [-ttl 1h]
package main

import (
	"flag"
	"fmt"
	"os"

	"financetracker/internal/config"
	"financetracker/internal/logger"
	"financetracker/internal/middleware"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Token error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	role := flag.String("role", "admin", "role claim to embed in the token")
	ttl := flag.Duration("ttl", cfg.JWTExpirationDur, "token lifetime")
	flag.Parse()

	token, err := middleware.GenerateToken(cfg.JWTSecret, *role, *ttl)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Println(token)
	return nil
}
