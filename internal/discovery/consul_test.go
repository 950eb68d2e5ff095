package discovery_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/SafeMPC/pox-signer/internal/config"
	"github.com/SafeMPC/pox-signer/internal/discovery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAgent struct {
	mu           sync.Mutex
	registered   map[string]interface{}
	deregistered []string
}

func newFakeAgent(t *testing.T) (*fakeAgent, *httptest.Server) {
	t.Helper()
	agent := &fakeAgent{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent.mu.Lock()
		defer agent.mu.Unlock()

		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/v1/agent/service/register":
			var body map[string]interface{}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			agent.registered = body
		case r.Method == http.MethodPut && len(r.URL.Path) > len("/v1/agent/service/deregister/"):
			agent.deregistered = append(agent.deregistered, r.URL.Path[len("/v1/agent/service/deregister/"):])
		default:
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return agent, srv
}

func TestConsulRegistrar(t *testing.T) {
	agent, srv := newFakeAgent(t)

	registrar, err := discovery.NewConsulRegistrar(srv.URL)
	require.NoError(t, err)

	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Signer.Network = "testnet"
	cfg.Discovery.ServiceID = "pox-signer-1"
	info := discovery.ServiceInfoFromConfig(cfg)

	require.NoError(t, registrar.Register(context.Background(), info))

	agent.mu.Lock()
	assert.Equal(t, "pox-signer-1", agent.registered["ID"])
	assert.Equal(t, "pox-signer", agent.registered["Name"])
	assert.Contains(t, agent.registered["Tags"], "network:testnet")
	agent.mu.Unlock()

	require.NoError(t, registrar.Deregister(context.Background(), info.ID))
	agent.mu.Lock()
	assert.Equal(t, []string{"pox-signer-1"}, agent.deregistered)
	agent.mu.Unlock()
}

func TestConsulRegistrarRequiresID(t *testing.T) {
	_, srv := newFakeAgent(t)
	registrar, err := discovery.NewConsulRegistrar(srv.URL)
	require.NoError(t, err)

	err = registrar.Register(context.Background(), &discovery.ServiceInfo{Name: "pox-signer"})
	assert.Error(t, err)
}

func TestServiceInfoFromConfigDefaultsID(t *testing.T) {
	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Discovery.ServiceID = ""
	cfg.Discovery.ServiceName = "pox-signer"
	cfg.Discovery.AdvertiseAddress = "10.0.0.5"
	cfg.Discovery.AdvertisePort = 8080

	info := discovery.ServiceInfoFromConfig(cfg)
	assert.Equal(t, "pox-signer-10.0.0.5-8080", info.ID)
	assert.Equal(t, "/-/ready", info.Check.Path)
}
