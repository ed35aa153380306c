package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/TSB04/API-OCTICODE/internal/auth"
	"github.com/TSB04/API-OCTICODE/internal/config"
	"github.com/TSB04/API-OCTICODE/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	users := e.Group("/api/user")

	// Public routes. The login rate limiter is a transport-level backstop in
	// front of the per-email guard inside the auth service.
	loginLimiter := middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(10))
	users.POST("/signup", authHandler.Signup)
	users.POST("/login", authHandler.Login, loginLimiter)
	users.POST("/find", userHandler.FindUsers)

	// Secured routes (require JWT authentication)
	secured := users.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/all", userHandler.ListUsers)
	secured.GET("/me", userHandler.GetMe)
	secured.PUT("/me", userHandler.UpdateMe)
	secured.PATCH("/me", userHandler.UpdateMe)
	secured.DELETE("/me", userHandler.DeleteMe)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
