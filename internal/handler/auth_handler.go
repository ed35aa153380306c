package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apperrors "github.com/TSB04/API-OCTICODE/internal/errors"
	"github.com/TSB04/API-OCTICODE/internal/service"
)

// AuthHandler handles signup and login endpoints.
type AuthHandler struct {
	authService service.AuthService
	log         zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// SignupRequest represents a user registration request.
// A caller-supplied isAdmin value is accepted by the decoder and ignored.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email,max=250"`
	Password string `json:"password" validate:"required"`
	Fname    string `json:"fname" validate:"omitempty,max=150"`
	Lname    string `json:"lname" validate:"omitempty,max=100"`
	Role     string `json:"role" validate:"omitempty,max=50"`
	IsAdmin  bool   `json:"isAdmin"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=250"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
	Fname   string `json:"fname"`
	Lname   string `json:"lname"`
	Email   string `json:"email"`
}

// Signup godoc
// @Summary Register a new user account
// @Tags user
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration data"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ValidationResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	_, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.Fname,
		LastName:  req.Lname,
		Role:      req.Role,
	})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "user registered successfully",
	})
}

// Login godoc
// @Summary Authenticate and receive a token
// @Tags user
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ValidationResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Message: "welcome back, " + user.FirstName,
		Token:   token,
		UserID:  user.ID.String(),
		IsAdmin: user.IsAdmin,
		Fname:   user.FirstName,
		Lname:   user.LastName,
		Email:   user.Email,
	})
}

func (h *AuthHandler) writeError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.Path()).Msg("auth operation failed")
	}
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}
