// Package web defines common components for a web application.
package web

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken          string     `json:"access_token,omitempty"`
	AccessTokenExpiresAt *time.Time `json:"access_token_expires_at,omitempty"`
	Data                 any        `json:"data,omitempty"`
	Error                string     `json:"error,omitempty"`
}

// Error wraps a given err into the response envelope.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// BindingError renders an error returned by gin binding. Validator errors are
// turned into a human readable list, anything else is reported as is.
func BindingError(err error) Response {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return Response{Error: GetErrorMsg(ve)}
	}

	return Error(err)
}

// GetErrorMsg converts validation errors into a single message.
func GetErrorMsg(ve validator.ValidationErrors) string {
	msgs := make([]string, 0, len(ve))

	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("%s field %s", fe.Field(), tagMessage(fe)))
	}

	return strings.Join(msgs, "; ")
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater or equal to " + fe.Param()
	case "min":
		return "must be at least " + fe.Param() + " characters long"
	case "max":
		return "must be less or equal to " + fe.Param()
	case "alphanum":
		return "must contain only letters and digits"
	case "operation":
		return "must be BUY or SELL"
	default:
		return "is invalid"
	}
}
