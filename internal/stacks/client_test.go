package stacks_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SafeMPC/pox-signer/internal/stacks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func poxServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/pox", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientCurrentRewardCycle(t *testing.T) {
	srv := poxServer(t, http.StatusOK, `{"contract_id":"SP000000000000000000002Q6VF78.pox-4","reward_cycle_id":91,"current_cycle":{"id":90}}`)

	c := stacks.NewClient(srv.URL+"/", time.Second)
	assert.Equal(t, srv.URL, c.Endpoint())

	cycle, err := c.CurrentRewardCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(91), cycle)
}

func TestClientFallsBackToCurrentCycle(t *testing.T) {
	srv := poxServer(t, http.StatusOK, `{"current_cycle":{"id":90}}`)

	cycle, err := stacks.NewClient(srv.URL, 0).CurrentRewardCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(90), cycle)
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusServiceUnavailable, "node is syncing"},
		{"malformed json", http.StatusOK, "{"},
		{"missing cycle", http.StatusOK, `{"contract_id":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := poxServer(t, tt.status, tt.body)
			_, err := stacks.NewClient(srv.URL, time.Second).CurrentRewardCycle(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestClientStatusErrorCarriesStack(t *testing.T) {
	srv := poxServer(t, http.StatusServiceUnavailable, "node is syncing\n")

	_, err := stacks.NewClient(srv.URL, time.Second).GetPoxInfo(context.Background())
	require.Error(t, err)
	assert.Equal(t, "stacks node returned 503: node is syncing", err.Error())

	_, hasStack := err.(interface{ StackTrace() errors.StackTrace })
	assert.True(t, hasStack)
}

func TestClientHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := stacks.NewClient(srv.URL, time.Minute).CurrentRewardCycle(ctx)
	assert.Error(t, err)
}

func TestNetworkByName(t *testing.T) {
	n, err := stacks.NetworkByName("Mainnet", "")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), n.ChainID)
	assert.Equal(t, "https://api.hiro.so", n.NodeURL)

	n, err = stacks.NetworkByName("testnet", "http://localhost:20443/")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x80000000), n.ChainID)
	assert.Equal(t, "http://localhost:20443", n.NodeURL)

	n, err = stacks.NetworkByName("nakamoto-testnet", "")
	require.NoError(t, err)
	assert.Equal(t, stacks.ChainIDTestnet, n.ChainID)

	_, err = stacks.NetworkByName("devnet", "")
	assert.ErrorIs(t, err, stacks.ErrUnknownNetwork)
	_, err = stacks.NetworkByName("", "")
	assert.ErrorIs(t, err, stacks.ErrUnknownNetwork)
}
