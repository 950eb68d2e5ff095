package httperrors

import (
	"fmt"
	"net/http"
	"strings"
)

const (
	TypeGeneric             = "generic"
	TypeValidation          = "validation"
	TypeSignatureRule       = "signature_rule"
	TypeUpstream            = "upstream"
	TypeSignerConfiguration = "signer_configuration"
	TypeUnauthorized        = "unauthorized"
)

// HTTPError is the error body of every non-2xx response: {"message": ..., "reason": ...}.
type HTTPError struct {
	Code    int    `json:"-"`
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
	// Reason carries the machine readable rule name for rejected signature requests.
	Reason           string   `json:"reason,omitempty"`
	ValidationErrors []string `json:"validationErrors,omitempty"`
	Detail           string   `json:"detail,omitempty"`
	Internal         error    `json:"-"`
}

func NewHTTPError(code int, errorType string, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Type:    errorType,
		Message: message,
	}
}

func NewHTTPErrorWithInternal(code int, errorType string, message string, internal error) *HTTPError {
	e := NewHTTPError(code, errorType, message)
	e.Internal = internal
	return e
}

func NewHTTPValidationError(code int, message string, validationErrors []string) *HTTPError {
	e := NewHTTPError(code, TypeValidation, message)
	e.ValidationErrors = validationErrors
	return e
}

func (e *HTTPError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "HTTPError %d (%s): %s", e.Code, e.Type, e.Message)
	if e.Reason != "" {
		fmt.Fprintf(&b, " [%s]", e.Reason)
	}
	if len(e.ValidationErrors) > 0 {
		fmt.Fprintf(&b, " - validation: %s", strings.Join(e.ValidationErrors, ", "))
	}
	if e.Internal != nil {
		fmt.Fprintf(&b, ", %v", e.Internal)
	}
	return b.String()
}

func (e *HTTPError) Unwrap() error {
	return e.Internal
}

var (
	ErrBadRequestMalformedBody = NewHTTPError(http.StatusBadRequest, TypeGeneric, "Malformed request body.")
	ErrUnauthorized            = NewHTTPError(http.StatusUnauthorized, TypeUnauthorized, "Unauthorized.")
	ErrForbiddenMissingScope   = NewHTTPError(http.StatusForbidden, TypeUnauthorized, "Missing scope.")
	ErrTooManyRequests         = NewHTTPError(http.StatusTooManyRequests, TypeGeneric, "Too many requests.")
	ErrInvalidSignerData       = NewHTTPError(http.StatusInternalServerError, TypeSignerConfiguration, "Invalid Signer Data")
	ErrRewardCycleUnavailable  = NewHTTPError(http.StatusBadGateway, TypeUpstream, "Unable to fetch the current reward cycle.")
	ErrInternalServer          = NewHTTPError(http.StatusInternalServerError, TypeGeneric, "Internal Server Error")
)
