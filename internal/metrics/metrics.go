package metrics

import (
	"net/http"

	"github.com/SafeMPC/pox-signer/internal/config"
	"github.com/SafeMPC/pox-signer/internal/pox"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pox_signer"

// Service 签名流水线的 prometheus 指标，实现 pox.Recorder
type Service struct {
	Registry *prometheus.Registry

	signaturesIssued *prometheus.CounterVec
	requestsRejected *prometheus.CounterVec
	upstreamFailures prometheus.Counter
	signerConfigured prometheus.Gauge
}

var _ pox.Recorder = (*Service)(nil)

// New creates the collectors on a dedicated registry, so several servers can live in one process (tests).
func New(cfg config.Server) (*Service, error) {
	registry := prometheus.NewRegistry()

	s := &Service{
		Registry: registry,
		signaturesIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signatures_issued_total",
			Help:      "Total signatures issued, by topic.",
		}, []string{"topic"}),
		requestsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_rejected_total",
			Help:      "Total signature requests rejected by validation, by reason.",
		}, []string{"reason"}),
		upstreamFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reward_cycle_upstream_failures_total",
			Help:      "Total failed reward cycle lookups.",
		}),
		signerConfigured: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "signer_configured",
			Help:      "1 when a signer key and network are configured.",
		}),
	}

	s.SetSignerConfigured(cfg.Signer.SignerConfigured())

	if err := registerAll(registry,
		s.signaturesIssued,
		s.requestsRejected,
		s.upstreamFailures,
		s.signerConfigured,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	); err != nil {
		return nil, err
	}

	return s, nil
}

func registerAll(registry *prometheus.Registry, cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) SignatureIssued(topic pox.Topic) {
	s.signaturesIssued.WithLabelValues(topic.Name()).Inc()
}

func (s *Service) RequestRejected(reason pox.Reason) {
	s.requestsRejected.WithLabelValues(string(reason)).Inc()
}

func (s *Service) UpstreamFailed() {
	s.upstreamFailures.Inc()
}

// SetSignerConfigured records whether requests can be signed.
func (s *Service) SetSignerConfigured(ok bool) {
	if ok {
		s.signerConfigured.Set(1)
		return
	}
	s.signerConfigured.Set(0)
}

// Handler serves the registry in the prometheus text format.
func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{Registry: s.Registry})
}
