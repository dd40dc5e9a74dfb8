package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/ogzkr/campushub/internal/app/models/dto"
)

// BindJSON binds the request body and converts binding failures to the
// field-error response shape. Returns false when the request was rejected.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewFieldErrorResponse(bindingErrorFields(err)))
		return false
	}
	return true
}

// bindingErrorFields flattens a binding error into the field map shape.
// Validator errors map per-field; anything else (malformed JSON) goes under
// a catch-all key.
func bindingErrorFields(err error) map[string][]string {
	fields := make(map[string][]string)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			fields[field] = append(fields[field], formatValidationError(fe))
		}
		return fields
	}

	fields["non_field_errors"] = []string{"invalid request body"}
	return fields
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "invalid value"
	}
}
