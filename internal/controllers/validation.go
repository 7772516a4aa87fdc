package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/dferrazm/gin-recipe-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// report field errors under their json names, not Go field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// respondValidationError turns a binding failure into a 400 with a
// field→message map in the error details
func respondValidationError(c *gin.Context, err error) {
	details := map[string]interface{}{}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			details[fe.Field()] = fieldErrorMessage(fe)
		}
	} else {
		details["non_field_errors"] = err.Error()
	}

	c.JSON(http.StatusBadRequest,
		models.NewAPIError(models.ErrValidationFailed, "Request validation failed", details))
}

// respondFieldError reports a single known-bad field as a 400
func respondFieldError(c *gin.Context, field, message string) {
	c.JSON(http.StatusBadRequest,
		models.NewAPIError(models.ErrValidationFailed, "Request validation failed",
			map[string]interface{}{field: message}))
}

// fieldErrorMessage converts a single validation error into a human-readable message
func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Enter a valid email address"
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters", fe.Param())
	default:
		return fmt.Sprintf("Failed validation (%s)", fe.Tag())
	}
}
