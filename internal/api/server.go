package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SafeMPC/pox-signer/internal/auth"
	"github.com/SafeMPC/pox-signer/internal/config"
	"github.com/SafeMPC/pox-signer/internal/discovery"
	"github.com/SafeMPC/pox-signer/internal/metrics"
	"github.com/SafeMPC/pox-signer/internal/pox"
	"github.com/SafeMPC/pox-signer/internal/stacks"
	"github.com/SafeMPC/pox-signer/internal/util"
	"github.com/dropbox/godropbox/time2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type Router struct {
	Routes     []*echo.Route
	Root       *echo.Group
	Management *echo.Group
	APIV1      *echo.Group

	// SignatureMiddleware guards the signature routes (rate limit, bearer auth when configured).
	SignatureMiddleware []echo.MiddlewareFunc
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the components
// in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized after the InitNewServer* call.
// Components labeled as `optional:"true"` may stay nil depending on the configuration.
// For more information about wire refer to https://pkg.go.dev/github.com/google/wire
type Server struct {
	// skip wire:
	// -> initialized with router.Init(s) function
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config  config.Server
	Clock   time2.Clock
	Metrics *metrics.Service
	Network stacks.Network
	Oracle  pox.RewardCycleOracle
	Signing *pox.Service

	Redis     redis.UniversalClient `optional:"true"`
	Tokens    *auth.TokenManager    `optional:"true"`
	Registrar discovery.Registrar   `optional:"true"`
}

// newServerWithComponents is used by wire to initialize the server components.
// Components not listed here won't be handled by wire and should be initialized separately.
// Components which shouldn't be handled must be labeled `wire:"-"` in Server struct.
func newServerWithComponents(
	cfg config.Server,
	clock time2.Clock,
	metricsService *metrics.Service,
	network stacks.Network,
	oracle pox.RewardCycleOracle,
	signing *pox.Service,
	redisClient redis.UniversalClient,
	tokens *auth.TokenManager,
	registrar discovery.Registrar,
) *Server {
	metricsService.SetSignerConfigured(signing.Configured())

	return &Server{
		Config:    cfg,
		Clock:     clock,
		Metrics:   metricsService,
		Network:   network,
		Oracle:    oracle,
		Signing:   signing,
		Redis:     redisClient,
		Tokens:    tokens,
		Registrar: registrar,
	}
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return true
}

// SignerReady reports whether signature requests can be served.
func (s *Server) SignerReady() bool {
	return s.Signing != nil && s.Signing.Configured()
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if s.Registrar != nil {
		info := discovery.ServiceInfoFromConfig(s.Config)
		if err := s.Registrar.Register(context.Background(), info); err != nil {
			// registration is best effort, the signer keeps serving
			log.Warn().Err(err).Str("service_id", info.ID).Msg("Failed to register service, continuing startup")
		}
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Registrar != nil {
		serviceID := discovery.ServiceInfoFromConfig(s.Config).ID
		log.Debug().Str("service_id", serviceID).Msg("Deregistering service")
		if err := s.Registrar.Deregister(ctx, serviceID); err != nil {
			log.Error().Err(err).Msg("Failed to deregister service")
			errs = append(errs, err)
		}
	}

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")
		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	if s.Redis != nil {
		log.Debug().Msg("Closing redis client")
		if err := s.Redis.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close redis client")
			errs = append(errs, err)
		}
	}

	return errs
}
