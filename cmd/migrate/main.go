package main

import (
	"context" // Seeding context

	"feedback_system/internal/config"     // Custom import path (Config)
	"feedback_system/internal/db"         // Custom import path (Database)
	"feedback_system/internal/repository" // Custom import path (Stores)
	"feedback_system/internal/service"    // Custom import path (Auth)
	"feedback_system/internal/utils"      // Custom import path (Tokens)

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("%v", err)
	}

	// Seed the admin account when credentials are configured
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logrus.Info("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return
	}
	tokens, err := utils.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry.Duration())
	if err != nil {
		logrus.Fatalf("failed to set up tokens: %v", err)
	}
	auth := service.NewAuthService(repository.NewUserRepo(gdb), nil, tokens)
	admin, created, err := auth.EnsureAdmin(context.Background(), cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logrus.Fatalf("failed to seed admin: %v", err)
	}
	entry := logrus.WithFields(logrus.Fields{"user_id": admin.ID, "email": admin.Email, "role": admin.Role})
	if !created {
		entry.Info("Admin account already exists")
		return
	}
	entry.Info("Admin account created")
}
