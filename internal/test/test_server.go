package test

import (
	"context"
	"testing"
	"time"

	"github.com/SafeMPC/pox-signer/internal/api"
	"github.com/SafeMPC/pox-signer/internal/api/router"
	"github.com/SafeMPC/pox-signer/internal/config"
	"github.com/SafeMPC/pox-signer/internal/pox"
)

const (
	TestSignerPrivateKey = "b41c2a9e65247e73a690dbef18622c04cfa1df276bb65ee77ed73cc876e3e77b01"
	TestSignerPublicKey  = "02778d476704afa540ac01438f62c371dc38741b00f35fb895e5cd48d070ebab41"
	TestSignerAddress    = "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"
	TestRewardCycle      = uint64(90)
)

// DefaultTestConfig returns the env config with a mainnet test signer and the outer
// middleware (rate limit, cache, consul) switched off.
func DefaultTestConfig(t *testing.T) config.Server {
	t.Helper()

	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Logger.PrettyPrintConsole = false
	cfg.Echo.EnableRateLimitMiddleware = false
	cfg.Cache.RewardCycleTTL = 0
	cfg.Cache.RedisAddress = ""
	cfg.Discovery.ConsulAddress = ""
	cfg.Auth.JWTSecret = ""
	cfg.Signer.PrivateKey = TestSignerPrivateKey
	cfg.Signer.PublicKey = TestSignerPublicKey
	cfg.Signer.Address = TestSignerAddress
	cfg.Signer.Network = "mainnet"
	cfg.Signer.NodeURL = ""

	return cfg
}

// WithTestServer runs closure with a fully wired server whose current reward cycle is TestRewardCycle.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, DefaultTestConfig(t), pox.FixedRewardCycle(TestRewardCycle), closure)
}

// WithTestServerConfigurable runs closure with a server built from config and oracle.
func WithTestServerConfigurable(t *testing.T, config config.Server, oracle pox.RewardCycleOracle, closure func(s *api.Server)) {
	t.Helper()

	s, err := api.InitNewServerWithOracle(config, oracle, t)
	if err != nil {
		t.Fatalf("failed to init server: %v", err)
	}

	router.Init(s)

	closure(s)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if errs := s.Shutdown(ctx); len(errs) > 0 {
		t.Fatalf("failed to shutdown server: %v", errs)
	}
}
