package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/noah-isme/lgu-benefits-api/internal/repository"
	"github.com/noah-isme/lgu-benefits-api/internal/service"
	"github.com/noah-isme/lgu-benefits-api/pkg/config"
	"github.com/noah-isme/lgu-benefits-api/pkg/database"
	"github.com/noah-isme/lgu-benefits-api/pkg/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var userID string
	var ttl time.Duration

	flagSet := pflag.NewFlagSet("devtoken", pflag.ContinueOnError)
	flagSet.StringVar(&userID, "user-id", "", "id of the stored user to mint a token for")
	flagSet.DurationVar(&ttl, "ttl", 0, "token lifetime (default JWT_EXPIRATION)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		fmt.Fprintf(os.Stderr, "Usage: devtoken --user-id <id> [--ttl 8h]\n\n")
		flagSet.PrintDefaults()
		return nil
	}
	if userID == "" {
		return errors.New("--user-id is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Env == config.EnvProduction {
		return errors.New("refusing to mint tokens in production")
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck

	tokens := service.NewTokenService(repository.NewUserRepository(db), service.TokenConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
		Expiry: cfg.JWT.Expiration,
	})
	token, expiresAt, err := tokens.IssueForUser(ctx, userID, ttl)
	if err != nil {
		return err
	}
	logr.Info("issued development token", zap.String("user_id", userID), zap.Time("expires_at", expiresAt))
	fmt.Println(token)
	return nil
}
