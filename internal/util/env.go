package util

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var (
	envOnce sync.Once
	env     *viper.Viper
)

// environment returns the process-wide viper instance bound to the environment.
func environment() *viper.Viper {
	envOnce.Do(func() {
		env = viper.New()
		env.AutomaticEnv()
	})
	return env
}

func GetEnv(key string, defaultVal string) string {
	if v := environment(); v.IsSet(key) {
		return v.GetString(key)
	}

	return defaultVal
}

func GetEnvEnum(key string, defaultVal string, allowedValues []string) string {
	if !environment().IsSet(key) {
		return defaultVal
	}

	value := environment().GetString(key)
	for _, allowed := range allowedValues {
		if strings.EqualFold(value, allowed) {
			return allowed
		}
	}

	log.Panic().Str("key", key).Str("value", value).Strs("allowed", allowedValues).Msg("Unsupported value for environment variable")
	return defaultVal
}

func GetEnvAsInt(key string, defaultVal int) int {
	if !environment().IsSet(key) {
		return defaultVal
	}

	value, err := castE(key, environment().GetString(key), strconv.Atoi)
	if err != nil {
		return defaultVal
	}
	return value
}

func GetEnvAsUint32(key string, defaultVal uint32) uint32 {
	value := GetEnvAsInt(key, int(defaultVal))
	if value < 0 {
		return defaultVal
	}
	return uint32(value)
}

func GetEnvAsFloat(key string, defaultVal float64) float64 {
	if !environment().IsSet(key) {
		return defaultVal
	}

	value, err := castE(key, environment().GetString(key), func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
	if err != nil {
		return defaultVal
	}
	return value
}

func GetEnvAsBool(key string, defaultVal bool) bool {
	if !environment().IsSet(key) {
		return defaultVal
	}

	value, err := castE(key, environment().GetString(key), strconv.ParseBool)
	if err != nil {
		return defaultVal
	}
	return value
}

// GetEnvAsDuration parses Go duration strings ("30s", "5m").
func GetEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if !environment().IsSet(key) {
		return defaultVal
	}

	value, err := castE(key, environment().GetString(key), time.ParseDuration)
	if err != nil {
		return defaultVal
	}
	return value
}

// GetEnvAsStringArr splits a comma separated variable, dropping empty items.
func GetEnvAsStringArr(key string, defaultVal []string, separator ...string) []string {
	if !environment().IsSet(key) {
		return defaultVal
	}

	sep := ","
	if len(separator) >= 1 {
		sep = separator[0]
	}

	var out []string
	for _, item := range strings.Split(environment().GetString(key), sep) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

func GetEnvAsLogLevel(key string, defaultVal zerolog.Level) zerolog.Level {
	if !environment().IsSet(key) {
		return defaultVal
	}

	level, err := castE(key, environment().GetString(key), zerolog.ParseLevel)
	if err != nil {
		return defaultVal
	}
	return level
}

func castE[T any](key string, raw string, parse func(string) (T, error)) (T, error) {
	value, err := parse(strings.TrimSpace(raw))
	if err != nil {
		log.Warn().Err(err).Str("key", key).Str("value", raw).Msg("Failed to parse environment variable, using default")
	}
	return value, err
}
