package config

import (
	"time"

	"github.com/SafeMPC/pox-signer/internal/util"
	"github.com/rs/zerolog"
)

type EchoServer struct {
	Debug                          bool
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	BaseURL                        string
	EnableCORSMiddleware           bool
	CORSAllowOrigins               []string
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnableLoggerMiddleware         bool
	EnableBodyLimitMiddleware      bool
	BodyLimit                      string
	EnableRateLimitMiddleware      bool
	// RateLimit is the sustained request rate per client IP (requests per second).
	RateLimit float64
	RateBurst int
}

type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	LogRequestBody     bool
	LogRequestHeader   bool
	LogRequestQuery    bool
	LogResponseBody    bool
	LogResponseHeader  bool
	PrettyPrintConsole bool
	File               string
	FileMaxSizeMB      int
	FileMaxBackups     int
	FileMaxAgeDays     int
}

// Signer 签名密钥与网络配置，变量名与旧服务保持一致
type Signer struct {
	PrivateKey    string `json:"-"`
	PublicKey     string
	Address       string
	Network       string
	NodeURL       string
	OracleTimeout time.Duration
}

// Cache configures the reward cycle cache. Redis is used when RedisAddress is set.
type Cache struct {
	RewardCycleTTL time.Duration
	RedisAddress   string
	RedisPassword  string `json:"-"`
	RedisDB        int
}

// AuthServer enables bearer token auth on the signature routes when JWTSecret is set.
type AuthServer struct {
	JWTSecret string `json:"-"`
	JWTIssuer string
}

type Discovery struct {
	ConsulAddress    string
	ServiceName      string
	ServiceID        string
	AdvertiseAddress string
	AdvertisePort    int
}

type ManagementServer struct {
	LivenessURL  string
	ReadinessURL string
	ProbeTimeout time.Duration
}

type Server struct {
	Echo       EchoServer
	Logger     LoggerServer
	Signer     Signer
	Cache      Cache
	Auth       AuthServer
	Discovery  Discovery
	Management ManagementServer
}

// DefaultServiceConfigFromEnv returns the server config as parsed from environment variables
// and their respective defaults defined below.
// We don't expect that ENV_VARs change while we are running our application or our tests
// (and it would be a bad thing to do anyways with parallel testing).
func DefaultServiceConfigFromEnv() Server {
	return Server{
		Echo: EchoServer{
			Debug:                          util.GetEnvAsBool("SERVER_ECHO_DEBUG", false),
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			BaseURL:                        util.GetEnv("SERVER_ECHO_BASE_URL", "http://localhost:8080"),
			EnableCORSMiddleware:           util.GetEnvAsBool("SERVER_ECHO_ENABLE_CORS_MIDDLEWARE", true),
			CORSAllowOrigins:               util.GetEnvAsStringArr("SERVER_ECHO_CORS_ALLOW_ORIGINS", []string{"http://localhost:3000", "http://localhost:3001"}),
			EnableRecoverMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
			EnableLoggerMiddleware:         util.GetEnvAsBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
			EnableBodyLimitMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_BODY_LIMIT_MIDDLEWARE", true),
			BodyLimit:                      util.GetEnv("SERVER_ECHO_BODY_LIMIT", "64K"),
			EnableRateLimitMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_RATE_LIMIT_MIDDLEWARE", true),
			RateLimit:                      util.GetEnvAsFloat("SERVER_ECHO_RATE_LIMIT", 10),
			RateBurst:                      util.GetEnvAsInt("SERVER_ECHO_RATE_BURST", 20),
		},
		Logger: LoggerServer{
			Level:              util.GetEnvAsLogLevel("SERVER_LOGGER_LEVEL", zerolog.DebugLevel),
			RequestLevel:       util.GetEnvAsLogLevel("SERVER_LOGGER_REQUEST_LEVEL", zerolog.InfoLevel),
			LogRequestBody:     util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_BODY", false),
			LogRequestHeader:   util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_HEADER", false),
			LogRequestQuery:    util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_QUERY", false),
			LogResponseBody:    util.GetEnvAsBool("SERVER_LOGGER_LOG_RESPONSE_BODY", false),
			LogResponseHeader:  util.GetEnvAsBool("SERVER_LOGGER_LOG_RESPONSE_HEADER", false),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
			File:               util.GetEnv("SERVER_LOGGER_FILE", ""),
			FileMaxSizeMB:      util.GetEnvAsInt("SERVER_LOGGER_FILE_MAX_SIZE_MB", 100),
			FileMaxBackups:     util.GetEnvAsInt("SERVER_LOGGER_FILE_MAX_BACKUPS", 5),
			FileMaxAgeDays:     util.GetEnvAsInt("SERVER_LOGGER_FILE_MAX_AGE_DAYS", 28),
		},
		Signer: Signer{
			PrivateKey:    util.GetEnv("SIGNER_PRV_KEY", ""),
			PublicKey:     util.GetEnv("SIGNER_PUB_KEY", ""),
			Address:       util.GetEnv("SIGNER_ADDRESS", ""),
			Network:       util.GetEnv("NETWORK", ""),
			NodeURL:       util.GetEnv("SIGNER_NODE_URL", ""),
			OracleTimeout: util.GetEnvAsDuration("SIGNER_ORACLE_TIMEOUT", 10*time.Second),
		},
		Cache: Cache{
			RewardCycleTTL: util.GetEnvAsDuration("CACHE_REWARD_CYCLE_TTL", 30*time.Second),
			RedisAddress:   util.GetEnv("REDIS_ADDRESS", ""),
			RedisPassword:  util.GetEnv("REDIS_PASSWORD", ""),
			RedisDB:        util.GetEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthServer{
			JWTSecret: util.GetEnv("AUTH_JWT_SECRET", ""),
			JWTIssuer: util.GetEnv("AUTH_JWT_ISSUER", "pox-signer"),
		},
		Discovery: Discovery{
			ConsulAddress:    util.GetEnv("CONSUL_ADDRESS", ""),
			ServiceName:      util.GetEnv("CONSUL_SERVICE_NAME", "pox-signer"),
			ServiceID:        util.GetEnv("CONSUL_SERVICE_ID", ""),
			AdvertiseAddress: util.GetEnv("CONSUL_ADVERTISE_ADDRESS", "127.0.0.1"),
			AdvertisePort:    util.GetEnvAsInt("CONSUL_ADVERTISE_PORT", 8080),
		},
		Management: ManagementServer{
			LivenessURL:  util.GetEnv("SERVER_MANAGEMENT_LIVENESS_URL", "http://127.0.0.1:8080/-/healthy"),
			ReadinessURL: util.GetEnv("SERVER_MANAGEMENT_READINESS_URL", "http://127.0.0.1:8080/-/ready"),
			ProbeTimeout: util.GetEnvAsDuration("SERVER_MANAGEMENT_PROBE_TIMEOUT", 2*time.Second),
		},
	}
}
