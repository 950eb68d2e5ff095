package middleware

import (
	"bytes"
	"io"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type LoggerConfig struct {
	Skipper           middleware.Skipper
	Level             zerolog.Level
	LogRequestBody    bool
	LogRequestHeader  bool
	LogRequestQuery   bool
	LogResponseBody   bool
	LogResponseHeader bool
	// RequestBodyLogSkipper hides bodies carrying secrets from the log.
	RequestBodyLogSkipper middleware.Skipper
}

// LoggerWithConfig attaches a request-scoped zerolog logger (with the request id) to the request
// context and logs every request once it completes.
func LoggerWithConfig(config LoggerConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}
	if config.RequestBodyLogSkipper == nil {
		config.RequestBodyLogSkipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			req := c.Request()
			res := c.Response()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = res.Header().Get(echo.HeaderXRequestID)
			}

			logger := log.With().Str("id", id).Logger()
			c.SetRequest(req.WithContext(logger.WithContext(req.Context())))
			req = c.Request()

			var reqBody []byte
			if config.LogRequestBody && !config.RequestBodyLogSkipper(c) && req.Body != nil {
				var err error
				reqBody, err = io.ReadAll(req.Body)
				if err != nil {
					logger.Debug().Err(err).Msg("Failed to read body while logging request")
				}
				req.Body = io.NopCloser(bytes.NewBuffer(reqBody))
			}

			var resBody *bytes.Buffer
			if config.LogResponseBody {
				resBody = new(bytes.Buffer)
				res.Writer = &bodyDumpWriter{ResponseWriter: res.Writer, Writer: io.MultiWriter(res.Writer, resBody)}
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			stop := time.Now()

			event := logger.WithLevel(config.Level)
			if res.Status >= 500 {
				event = logger.Error()
			}

			event = event.
				Str("method", req.Method).
				Str("url", req.URL.Path).
				Str("ip", c.RealIP()).
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("duration_ms", stop.Sub(start)).
				Str("user_agent", req.UserAgent())

			if config.LogRequestQuery {
				event = event.Str("query", req.URL.RawQuery)
			}
			if config.LogRequestHeader {
				event = event.Interface("req_header", redactHeader(req.Header))
			}
			if reqBody != nil {
				event = event.Bytes("req_body", reqBody)
			}
			if config.LogResponseHeader {
				event = event.Interface("res_header", res.Header())
			}
			if resBody != nil {
				event = event.Bytes("res_body", resBody.Bytes())
			}

			event.Msg("http_request")

			return nil
		}
	}
}
