package metrics_test

import (
	"testing"

	"github.com/SafeMPC/pox-signer/internal/config"
	"github.com/SafeMPC/pox-signer/internal/metrics"
	"github.com/SafeMPC/pox-signer/internal/pox"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	cfg := config.DefaultServiceConfigFromEnv()
	first, err := metrics.New(cfg)
	require.NoError(t, err)

	// every service owns its registry
	second, err := metrics.New(cfg)
	require.NoError(t, err)

	first.SignatureIssued(pox.TopicStackStx)
	first.SignatureIssued(pox.TopicStackStx)
	first.SignatureIssued(pox.TopicAggregateCommit)
	first.RequestRejected(pox.ReasonPastRewCycle)
	first.UpstreamFailed()
	first.SetSignerConfigured(true)

	count, err := testutil.GatherAndCount(first.Registry,
		"pox_signer_signatures_issued_total",
		"pox_signer_requests_rejected_total",
		"pox_signer_reward_cycle_upstream_failures_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	count, err = testutil.GatherAndCount(second.Registry, "pox_signer_signatures_issued_total")
	require.NoError(t, err)
	assert.Zero(t, count)
}
