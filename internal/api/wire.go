//go:build wireinject

//go:generate wire

package api

import (
	"testing"

	"github.com/SafeMPC/pox-signer/internal/config"
	"github.com/SafeMPC/pox-signer/internal/metrics"
	"github.com/SafeMPC/pox-signer/internal/pox"
	"github.com/google/wire"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	metrics.New,
	NewClock,
	NewNetwork,
	NewSigner,
	NewAuthIDGenerator,
	NewSigningService,
	NewTokenManager,
	NewRegistrar,
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet, NewRedisClient, NewRewardCycleOracle, NoTest)
	return new(Server), nil
}

// InitNewServerWithOracle returns a new Server instance using the given reward cycle oracle
// instead of the network node. Redis is not used.
func InitNewServerWithOracle(
	_ config.Server,
	_ pox.RewardCycleOracle,
	t ...*testing.T,
) (*Server, error) {
	wire.Build(serviceSet, NoRedis)
	return new(Server), nil
}
