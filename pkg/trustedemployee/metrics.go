package trustedemployee

import "github.com/prometheus/client_golang/prometheus"

const (
	opSubmit   = "submit"
	opStatus   = "status"
	opDownload = "download"

	outcomeSuccess        = "success"
	outcomeHTTPError      = "http_error"
	outcomeTransportError = "transport_error"
)

type clientMetrics struct {
	requestsTotal *prometheus.CounterVec
}

func newClientMetrics(reg prometheus.Registerer) *clientMetrics {
	m := &clientMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trustedemployee_requests_total",
			Help: "Requests issued to the screening vendor, by operation and outcome.",
		}, []string{"operation", "outcome"}),
	}

	if reg != nil {
		reg.MustRegister(m.requestsTotal)
	}

	return m
}

func (m *clientMetrics) observe(op, outcome string) {
	m.requestsTotal.WithLabelValues(op, outcome).Inc()
}
