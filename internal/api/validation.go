package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidateStruct validates a struct and returns formatted errors
func ValidateStruct(s interface{}) []ValidationError {
	validate := validator.New()

	err := validate.Struct(s)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return formatErrors(verrs)
		}
	}

	return nil
}

// BindingErrors extracts formatted field errors from a gin binding failure.
// Returns nil when the error is not a validator error (malformed JSON etc).
func BindingErrors(err error) []ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	return formatErrors(verrs)
}

func formatErrors(verrs validator.ValidationErrors) []ValidationError {
	var out []ValidationError
	for _, err := range verrs {
		out = append(out, ValidationError{
			Field:   err.Field(),
			Tag:     err.Tag(),
			Message: getErrorMessage(err),
		})
	}
	return out
}

// getErrorMessage returns a user-friendly error message
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return err.Field() + " must be a valid email address"
	case "min":
		return err.Field() + " must be at least " + err.Param()
	case "max":
		return err.Field() + " must be at most " + err.Param()
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "gte":
		return err.Field() + " must be greater than or equal to " + err.Param()
	case "lte":
		return err.Field() + " must be less than or equal to " + err.Param()
	default:
		return err.Field() + " is invalid"
	}
}

// RespondWithValidationErrors sends validation errors as JSON response
func RespondWithValidationErrors(c *gin.Context, errors []ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "validation failed",
		"details": errors,
	})
}
