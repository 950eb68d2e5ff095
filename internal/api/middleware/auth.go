package middleware

import (
	"strings"

	"github.com/SafeMPC/pox-signer/internal/api/httperrors"
	"github.com/SafeMPC/pox-signer/internal/auth"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type contextKey string

const CtxKeyClaims contextKey = "auth_claims"

// BearerAuth requires a valid token carrying scope. A nil manager disables the check.
func BearerAuth(tokens *auth.TokenManager, scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if tokens == nil {
			return next
		}

		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(raw) == "" {
				return httperrors.ErrUnauthorized
			}

			claims, err := tokens.Verify(strings.TrimSpace(raw))
			if err != nil {
				zerolog.Ctx(c.Request().Context()).Debug().Err(err).Msg("Rejected bearer token")
				return httperrors.ErrUnauthorized
			}
			if !claims.HasScope(scope) {
				return httperrors.ErrForbiddenMissingScope
			}

			c.Set(string(CtxKeyClaims), claims)
			return next(c)
		}
	}
}
