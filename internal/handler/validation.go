package handler

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "github.com/TSB04/API-OCTICODE/internal/errors"
)

// bindAndValidate decodes the request body and runs the schema validation,
// writing a field-keyed 400 on failure. Returns false when the response has
// already been written.
func bindAndValidate(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, apperrors.ValidationResponse{
			Error:  "validation failed",
			Code:   "VALIDATION_ERROR",
			Fields: fieldMessages(err),
		})
	}
	return true, nil
}

// fieldMessages flattens validator errors into a field-keyed map.
func fieldMessages(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "is required"
		case "email":
			out[field] = "must be a valid email address"
		case "max":
			out[field] = "must be at most " + fe.Param() + " characters"
		default:
			out[field] = "is invalid"
		}
	}
	return out
}
