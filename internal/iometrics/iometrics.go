// Package iometrics exports the outcome of a population run in the
// Prometheus text format, for the node-exporter textfile collector.
package iometrics

import (
	"time"

	legisdb "github.com/civicdata/legisdb/pkg"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "legisdb"

// NewRegistry returns a registry with gauges describing the summary.
func NewRegistry(s *legisdb.Summary) *prometheus.Registry {
	reg := prometheus.NewRegistry()

	records := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "populate",
		Name:      "records",
		Help:      "Records of the last run by outcome.",
	}, []string{"outcome"})
	records.WithLabelValues("total").Set(float64(s.Total))
	records.WithLabelValues("processed").Set(float64(s.Processed))
	records.WithLabelValues("skipped").Set(float64(s.Skipped))

	legislators := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "populate",
		Name:      "legislators",
		Help:      "Legislators of the last run by outcome.",
	}, []string{"outcome"})
	legislators.WithLabelValues("inserted").Set(float64(s.LegislatorsInserted))
	legislators.WithLabelValues("matched").Set(float64(s.LegislatorsMatched))

	terms := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "populate",
		Name:      "terms",
		Help:      "Terms of the last run by outcome.",
	}, []string{"outcome"})
	terms.WithLabelValues("inserted").Set(float64(s.TermsInserted))
	terms.WithLabelValues("existing").Set(float64(s.TermsExisting))
	terms.WithLabelValues("rejected").Set(float64(s.TermsRejected))
	terms.WithLabelValues("no_context").Set(float64(s.TermsNoContext))

	duration := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "populate",
		Name:      "duration_seconds",
		Help:      "Wall-clock time of the last run.",
	})
	duration.Set(s.Duration.Seconds())

	success := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "populate",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last committed run.",
	}, []string{"run_id"})
	success.WithLabelValues(s.RunID).Set(float64(time.Now().Unix()))

	reg.MustRegister(records, legislators, terms, duration, success)
	return reg
}

// WriteTextfile writes metrics of the summary to path atomically.
func WriteTextfile(path string, s *legisdb.Summary) error {
	if err := prometheus.WriteToTextfile(path, NewRegistry(s)); err != nil {
		return WriteError(path, err)
	}
	return nil
}
