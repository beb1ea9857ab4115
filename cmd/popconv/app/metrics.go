package app

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"modcell.io/popio/pkg/popio"
)

// renderMetrics writes the counters of one conversion in the Prometheus text
// format, for collection by a node exporter textfile collector.
func renderMetrics(w io.Writer, command string, report popio.Report, droppedEmpty int) error {
	reg := prometheus.NewRegistry()
	individuals := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "popconv",
		Name:      "individuals",
		Help:      "Number of individuals seen at each stage of the last conversion.",
	}, []string{"command", "stage"})
	reg.MustRegister(individuals)

	stages := []struct {
		name  string
		value int
	}{
		{"empty_dropped", droppedEmpty},
		{"input", report.Input},
		{"duplicates", report.Duplicates},
		{"alpha_violations", report.AlphaViolations},
		{"dominated", report.Dominated},
		{"retained", report.Retained},
	}
	for _, s := range stages {
		individuals.WithLabelValues(command, s.name).Set(float64(s.value))
	}

	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("render metrics: %w", err)
		}
	}
	return nil
}
