package main

import (
	"net/http"

	_ "github.com/TSB04/API-OCTICODE/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"github.com/TSB04/API-OCTICODE/internal/auth"
	"github.com/TSB04/API-OCTICODE/internal/cache"
	"github.com/TSB04/API-OCTICODE/internal/config"
	"github.com/TSB04/API-OCTICODE/internal/db"
	"github.com/TSB04/API-OCTICODE/internal/handler"
	"github.com/TSB04/API-OCTICODE/internal/logger"
	"github.com/TSB04/API-OCTICODE/internal/model"
	"github.com/TSB04/API-OCTICODE/internal/password"
	"github.com/TSB04/API-OCTICODE/internal/repository"
	"github.com/TSB04/API-OCTICODE/internal/router"
	"github.com/TSB04/API-OCTICODE/internal/service"
)

// @title User Account API
// @version 1.0
// @description Account backend with signup, login, directory search, and self-service profile management.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.AppEnv)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB, cfg.StoreTimeout)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	loginGuard := auth.NewLoginGuard(cacheClient)
	policy := password.NewPolicy()

	authService := service.NewAuthService(userRepo, jwtService, loginGuard, policy)
	userService := service.NewUserService(userRepo, cacheClient)

	authHandler := handler.NewAuthHandler(authService, log)
	userHandler := handler.NewUserHandler(userService, log)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, authHandler, userHandler)

	log.Info().Str("port", cfg.ServerPort).Msg("starting server")

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
