package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/emirkaya/schoolhub/internal/app/models/dto"
)

// parseIDParam parses a positive int64 path parameter, writing the 400
// response itself on failure.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter"))
		return 0, false
	}
	return id, true
}

// handleBindingError writes the 400 response for a failed request bind,
// surfacing the first field-level validation failure when there is one.
func handleBindingError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest,
		dto.NewErrorResponse(dto.ErrorCodeValidationFailed, bindingErrorMessage(err)))
}

// bindingErrorMessage builds a readable message from a binding failure.
func bindingErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Invalid request data"
	}

	e := validationErrs[0]
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " failed validation: " + e.Tag()
	}
}
