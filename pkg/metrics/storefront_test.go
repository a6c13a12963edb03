package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStorefrontMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewStorefrontMetrics(reg)

	metrics.IncSession("login", "success")
	metrics.IncSession("login", "success")
	metrics.IncCollection("cart", "add", "duplicate")
	metrics.IncStorageFailure("")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "storefront_session_transitions_total", map[string]string{"op": "login", "outcome": "success"}); err != nil {
		t.Fatalf("fetch session: %v", err)
	} else if got != 2 {
		t.Fatalf("expected session=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "storefront_collection_operations_total", map[string]string{"collection": "cart", "op": "add", "outcome": "duplicate"}); err != nil {
		t.Fatalf("fetch collection: %v", err)
	} else if got != 1 {
		t.Fatalf("expected collection=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "storefront_storage_failures_total", map[string]string{"op": "unknown"}); err != nil {
		t.Fatalf("fetch storage: %v", err)
	} else if got != 1 {
		t.Fatalf("expected storage failure=1, got %f", got)
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *StorefrontMetrics
	m.IncSession("login", "success")
	m.IncCollection("cart", "add", "added")
	m.IncStorageFailure("set")

	unregistered := NewStorefrontMetrics(nil)
	unregistered.IncSession("logout", "success")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok && v == pair.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
