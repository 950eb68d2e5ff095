package httperrors

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// HTTPErrorHandlerWithConfig renders every error as an HTTPError body. Internal details are
// only exposed when hideInternalDetails is false.
func HTTPErrorHandlerWithConfig(hideInternalDetails bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		log := zerolog.Ctx(c.Request().Context())
		if log.GetLevel() == zerolog.Disabled {
			log = &zlog.Logger
		}

		var httpErr *HTTPError
		var echoErr *echo.HTTPError
		switch {
		case errors.As(err, &httpErr):
		case errors.As(err, &echoErr):
			message := http.StatusText(echoErr.Code)
			if m, ok := echoErr.Message.(string); ok && m != "" {
				message = m
			}
			httpErr = NewHTTPErrorWithInternal(echoErr.Code, TypeGeneric, message, echoErr.Internal)
		default:
			httpErr = withInternal(ErrInternalServer, err)
		}

		if httpErr.Code >= http.StatusInternalServerError {
			log.Error().Err(err).Int("status", httpErr.Code).Msg("Request failed")
		} else {
			log.Debug().Err(err).Int("status", httpErr.Code).Msg("Request rejected")
		}

		body := *httpErr
		if !hideInternalDetails && httpErr.Internal != nil && httpErr.Code >= http.StatusInternalServerError {
			body.Detail = httpErr.Internal.Error()
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(httpErr.Code)
		} else {
			err = c.JSON(httpErr.Code, body)
		}
		if err != nil {
			log.Warn().Err(err).Msg("Failed to write error response")
		}
	}
}
