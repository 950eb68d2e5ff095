package api

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SafeMPC/pox-signer/internal/auth"
	"github.com/SafeMPC/pox-signer/internal/config"
	"github.com/SafeMPC/pox-signer/internal/discovery"
	"github.com/SafeMPC/pox-signer/internal/metrics"
	"github.com/SafeMPC/pox-signer/internal/pox"
	"github.com/SafeMPC/pox-signer/internal/stacks"
	"github.com/dropbox/godropbox/time2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// PROVIDERS - define here only providers that for various reasons (e.g. cyclic dependency) can't live in their corresponding packages
// or for wrapping providers that only accept sub-configs to prevent the requirements for defining providers for sub-configs.
// https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

func NewClock(t ...*testing.T) time2.Clock {
	var clock time2.Clock

	useMock := len(t) > 0 && t[0] != nil

	if useMock {
		clock = time2.NewMockClock(time.Now())
	} else {
		clock = time2.DefaultClock
	}

	return clock
}

func NoTest() []*testing.T {
	return nil
}

// NewNetwork resolves NETWORK. An unknown or empty network yields the zero Network, which leaves
// the signer unconfigured.
func NewNetwork(cfg config.Server) stacks.Network {
	network, err := stacks.NetworkByName(cfg.Signer.Network, cfg.Signer.NodeURL)
	if err != nil {
		log.Warn().Err(err).Str("network", cfg.Signer.Network).Msg("Signer network is not configured")
		return stacks.Network{}
	}

	return network
}

// NewSigner loads SIGNER_PRV_KEY. It returns nil when the signer data is missing or invalid:
// the server still starts and rejects signature requests with a configuration error.
func NewSigner(cfg config.Server, network stacks.Network) pox.Signer {
	if !cfg.Signer.SignerConfigured() || network.Name == "" {
		log.Warn().
			Bool("has_private_key", cfg.Signer.PrivateKey != "").
			Bool("has_address", cfg.Signer.Address != "").
			Str("network", cfg.Signer.Network).
			Msg("Invalid Signer Data")
		return nil
	}

	signer, err := pox.ParsePrivateKey(cfg.Signer.PrivateKey)
	if err != nil {
		log.Warn().Err(err).Msg("Invalid Signer Data")
		return nil
	}

	if cfg.Signer.PublicKey != "" && cfg.Signer.PublicKey != signer.PublicKeyHex() {
		log.Warn().
			Str("configured", cfg.Signer.PublicKey).
			Str("derived", signer.PublicKeyHex()).
			Msg("SIGNER_PUB_KEY does not match SIGNER_PRV_KEY, using the derived key")
	}

	log.Info().Str("network", network.Name).Str("public_key", signer.PublicKeyHex()).Msg("Signer key loaded")
	return signer
}

// NewRedisClient connects to REDIS_ADDRESS. Without an address no client is created.
func NewRedisClient(cfg config.Server) (redis.UniversalClient, error) {
	if cfg.Cache.RedisAddress == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddress,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// NewRewardCycleOracle queries the network node, cached in redis (or in memory) for the configured TTL.
func NewRewardCycleOracle(cfg config.Server, network stacks.Network, redisClient redis.UniversalClient, clock time2.Clock) pox.RewardCycleOracle {
	if network.NodeURL == "" {
		return unconfiguredOracle{}
	}

	client := stacks.NewClient(network.NodeURL, cfg.Signer.OracleTimeout)
	return wrapOracleCache(cfg, network, client, redisClient, clock)
}

func wrapOracleCache(cfg config.Server, network stacks.Network, oracle stacks.Oracle, redisClient redis.UniversalClient, clock time2.Clock) pox.RewardCycleOracle {
	if cfg.Cache.RewardCycleTTL <= 0 {
		return oracle
	}

	var cache stacks.CycleCache
	if redisClient != nil {
		cache = stacks.NewRedisCycleCache(redisClient)
	} else {
		cache = stacks.NewMemoryCycleCache(clock.Now)
	}

	return stacks.NewCachedOracle(oracle, cache, network.Name, cfg.Cache.RewardCycleTTL)
}

type unconfiguredOracle struct{}

func (unconfiguredOracle) CurrentRewardCycle(context.Context) (uint64, error) {
	return 0, pox.ErrConfiguration
}

func NewAuthIDGenerator(clock time2.Clock) *pox.AuthIDGenerator {
	return pox.NewAuthIDGenerator(clock)
}

func NewSigningService(oracle pox.RewardCycleOracle, signer pox.Signer, network stacks.Network, authIDs *pox.AuthIDGenerator, metricsService *metrics.Service) (*pox.Service, error) {
	return pox.NewService(oracle, signer, network.ChainID, authIDs, metricsService)
}

// NewTokenManager enables bearer auth when AUTH_JWT_SECRET is set.
func NewTokenManager(cfg config.Server, clock time2.Clock) *auth.TokenManager {
	if cfg.Auth.JWTSecret == "" {
		return nil
	}

	return auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, clock)
}

// NewRegistrar registers the signer in Consul when CONSUL_ADDRESS is set.
func NewRegistrar(cfg config.Server) (discovery.Registrar, error) {
	if cfg.Discovery.ConsulAddress == "" {
		return nil, nil
	}

	registrar, err := discovery.NewConsulRegistrar(cfg.Discovery.ConsulAddress)
	if err != nil {
		return nil, err
	}

	return registrar, nil
}

func NoRedis() redis.UniversalClient {
	return nil
}
