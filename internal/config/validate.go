package config

import (
	"strings"

	"github.com/labstack/gommon/bytes"
	"github.com/pkg/errors"
)

var ErrInvalidConfig = errors.New("invalid server config")

// Validate checks settings the server cannot start without. Missing signer key material is
// not an error here: the server starts and answers signature requests with a configuration error.
func (s Server) Validate() error {
	if strings.TrimSpace(s.Echo.ListenAddress) == "" {
		return errors.Wrap(ErrInvalidConfig, "listen address is empty")
	}
	if s.Echo.EnableBodyLimitMiddleware {
		if _, err := bytes.Parse(s.Echo.BodyLimit); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "body limit %q: %v", s.Echo.BodyLimit, err)
		}
	}
	if s.Echo.EnableRateLimitMiddleware && (s.Echo.RateLimit <= 0 || s.Echo.RateBurst <= 0) {
		return errors.Wrap(ErrInvalidConfig, "rate limit and burst must be positive")
	}
	if s.Cache.RewardCycleTTL < 0 {
		return errors.Wrap(ErrInvalidConfig, "reward cycle cache ttl must not be negative")
	}
	if s.Signer.OracleTimeout <= 0 {
		return errors.Wrap(ErrInvalidConfig, "oracle timeout must be positive")
	}
	if s.Auth.JWTSecret != "" && len(s.Auth.JWTSecret) < 16 {
		return errors.Wrap(ErrInvalidConfig, "jwt secret must be at least 16 characters")
	}
	if s.Discovery.ConsulAddress != "" && s.Discovery.AdvertisePort <= 0 {
		return errors.Wrap(ErrInvalidConfig, "consul advertise port must be positive")
	}

	return nil
}

// SignerConfigured reports whether the env carries the variables a signer needs.
func (s Signer) SignerConfigured() bool {
	return s.PrivateKey != "" && s.Address != "" && s.Network != ""
}
