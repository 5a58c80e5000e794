package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bratat/go-user-accounts/config"
	"github.com/bratat/go-user-accounts/internal/domain/entity"
	"github.com/bratat/go-user-accounts/internal/domain/repository"
	"github.com/bratat/go-user-accounts/internal/infrastructure/store"
	"github.com/bratat/go-user-accounts/pkg/helpers"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a confirmed demo account that can log in right away",
		RunE:  runSeed,
	}
	rootCmd.Flags().String("name", "Demo User", "Display name")
	rootCmd.Flags().String("email", "demo.user@example.com", "Login email")
	rootCmd.Flags().String("password", "password123", "Plain password")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	repo, closeStore, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open user store: %w", err)
	}
	defer closeStore()

	existing, err := repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		existing.Confirm()
		existing.Name = name
		if err := repo.Update(ctx, existing); err != nil {
			return fmt.Errorf("update seeded user: %w", err)
		}
		fmt.Printf("seeded user already present: id=%s email=%s\n", existing.ID, existing.Email)
		return nil
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("look up %s: %w", email, err)
	}

	hash, err := helpers.NewPasswordHasher(cfg.BcryptCost).Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Confirmed:    true,
		Settings:     entity.Settings{Mode: entity.ModeLight},
	}
	if err := repo.Create(ctx, u); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	fmt.Printf("seeded user: id=%s email=%s name=%s\n", u.ID, u.Email, u.Name)
	return nil
}
