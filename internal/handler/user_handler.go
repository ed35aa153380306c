package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/TSB04/API-OCTICODE/internal/auth"
	apperrors "github.com/TSB04/API-OCTICODE/internal/errors"
	"github.com/TSB04/API-OCTICODE/internal/repository"
	"github.com/TSB04/API-OCTICODE/internal/service"
)

// UserHandler handles directory and self-service endpoints.
type UserHandler struct {
	svc service.UserService
	log zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// FindRequest represents a directory search. All fields are optional; an
// empty request matches every record.
type FindRequest struct {
	Email string `json:"email" validate:"omitempty,email,max=250"`
	Fname string `json:"fname" validate:"omitempty,max=150"`
	Lname string `json:"lname" validate:"omitempty,max=100"`
}

// UpdateMeRequest represents a self-update. Role and admin flag are not
// accepted through this endpoint.
type UpdateMeRequest struct {
	Email *string `json:"email" validate:"omitempty,email,max=250"`
	Fname *string `json:"fname" validate:"omitempty,max=150"`
	Lname *string `json:"lname" validate:"omitempty,max=100"`
}

// DirectoryEntry is the projection returned by the list endpoint.
type DirectoryEntry struct {
	Fname   string `json:"fname"`
	Lname   string `json:"lname"`
	IsAdmin bool   `json:"isAdmin"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

// SearchEntry is the projection returned by the find endpoint.
type SearchEntry struct {
	Fname string `json:"fname"`
	Lname string `json:"lname"`
	Email string `json:"email"`
}

// ListUsers godoc
// @Summary List all users
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {array} DirectoryEntry
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/all [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return h.writeError(c, err)
	}

	entries := make([]DirectoryEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, DirectoryEntry{
			Fname:   u.FirstName,
			Lname:   u.LastName,
			IsAdmin: u.IsAdmin,
			Email:   u.Email,
			Role:    u.Role,
		})
	}
	return c.JSON(http.StatusOK, entries)
}

// FindUsers godoc
// @Summary Search users by exact field match
// @Tags user
// @Accept json
// @Produce json
// @Param request body FindRequest true "Search filter"
// @Success 200 {array} SearchEntry
// @Failure 400 {object} errors.ValidationResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/find [post]
func (h *UserHandler) FindUsers(c echo.Context) error {
	var req FindRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	users, err := h.svc.Search(c.Request().Context(), repository.Filter{
		Email:     req.Email,
		FirstName: req.Fname,
		LastName:  req.Lname,
	})
	if err != nil {
		return h.writeError(c, err)
	}

	entries := make([]SearchEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, SearchEntry{
			Fname: u.FirstName,
			Lname: u.LastName,
			Email: u.Email,
		})
	}
	return c.JSON(http.StatusOK, entries)
}

// GetMe godoc
// @Summary Fetch the authenticated user's record
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/me [get]
func (h *UserHandler) GetMe(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	user, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Update the authenticated user's record
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateMeRequest true "Fields to replace"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ValidationResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	var req UpdateMeRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	user, err := h.svc.Update(c.Request().Context(), id, service.UpdateInput{
		Email:     req.Email,
		FirstName: req.Fname,
		LastName:  req.Lname,
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteMe godoc
// @Summary Delete the authenticated user's record
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/me [delete]
func (h *UserHandler) DeleteMe(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "user deleted successfully",
	})
}

func (h *UserHandler) writeError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.Path()).Msg("user operation failed")
	}
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// callerID extracts the authenticated user's id from the JWT middleware.
func callerID(c echo.Context) (uuid.UUID, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
	}
	return id, nil
}
