package metric

import "github.com/prometheus/client_golang/prometheus"

// CredentialCollector reports whether a session credential is stored.
// The check runs at gather time so the value is never stale.
type CredentialCollector struct {
	desc    *prometheus.Desc
	present func() bool
}

// NewCredentialCollector creates a collector around present.
func NewCredentialCollector(present func() bool) *CredentialCollector {
	return &CredentialCollector{
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "client", "credential_present"),
			"1 when an access token is stored, 0 otherwise.",
			nil, nil,
		),
		present: present,
	}
}

// Describe implements prometheus.Collector.
func (c *CredentialCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *CredentialCollector) Collect(ch chan<- prometheus.Metric) {
	v := 0.0
	if c.present() {
		v = 1
	}
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, v)
}
