// Seed bootstraps an initial admin user from environment variables.
package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/TSB04/API-OCTICODE/internal/config"
	"github.com/TSB04/API-OCTICODE/internal/db"
	"github.com/TSB04/API-OCTICODE/internal/logger"
	"github.com/TSB04/API-OCTICODE/internal/model"
	"github.com/TSB04/API-OCTICODE/internal/password"
	"github.com/TSB04/API-OCTICODE/internal/repository"
	"github.com/TSB04/API-OCTICODE/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.AppEnv)

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal().Msg("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	if !password.NewPolicy().Validate(adminPassword) {
		log.Fatal().Msg("ADMIN_PASSWORD does not meet the strength policy")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	repo := repository.NewUserRepository(gormDB, cfg.StoreTimeout)
	ctx := context.Background()

	existing, err := repo.FindByEmail(ctx, adminEmail)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal().Err(err).Msg("check admin existence")
	}
	if existing != nil {
		log.Info().Str("email", adminEmail).Msg("admin user already present, nothing to do")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), service.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash admin password")
	}

	admin := &model.User{
		Email:        adminEmail,
		PasswordHash: string(hashed),
		FirstName:    os.Getenv("ADMIN_FNAME"),
		LastName:     os.Getenv("ADMIN_LNAME"),
		Role:         "admin",
		IsAdmin:      true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("create admin user")
	}

	log.Info().Str("email", adminEmail).Str("userId", admin.ID.String()).Msg("admin user created")
}
