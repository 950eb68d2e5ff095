package util

import (
	"net/http"

	"github.com/SafeMPC/pox-signer/internal/api/httperrors"
	oaerrors "github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request and response payloads.
type Validatable interface {
	Validate(formats strfmt.Registry) error
}

// BindAndValidateBody binds the JSON body into v and validates it.
// Binding and validation failures are reported as 400.
func BindAndValidateBody(c echo.Context, v Validatable) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindBody(c, v); err != nil {
		LogFromContext(c.Request().Context()).Debug().Err(err).Msg("Failed to bind request body")
		e := *httperrors.ErrBadRequestMalformedBody
		e.Internal = err
		return &e
	}

	return validatePayload(c, v)
}

func validatePayload(c echo.Context, v Validatable) error {
	err := v.Validate(strfmt.Default)
	if err == nil {
		return nil
	}

	LogFromContext(c.Request().Context()).Debug().Err(err).Msg("Payload validation failed")
	return httperrors.NewHTTPValidationError(http.StatusBadRequest, "Bad Request", formatValidationErrors(err))
}

func formatValidationErrors(err error) []string {
	composite, ok := err.(*oaerrors.CompositeError)
	if !ok {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(composite.Errors))
	for _, e := range composite.Errors {
		out = append(out, formatValidationErrors(e)...)
	}
	return out
}

// ValidateAndReturn validates the response payload and writes it as JSON.
func ValidateAndReturn(c echo.Context, code int, v Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		LogFromContext(c.Request().Context()).Error().Err(err).Msg("Response validation failed")
		return err
	}

	return c.JSON(code, v)
}
