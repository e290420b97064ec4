package manychat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNilMetricsCollector(t *testing.T) {
	var mc *MetricsCollector

	// Every recorder must be a no-op on a nil collector.
	mc.RecordRequestStart("GET", "/fb/page/getTags")
	mc.RecordRequestEnd("GET", "/fb/page/getTags")
	mc.RecordRequest("GET", "/fb/page/getTags", 200, time.Millisecond)
	mc.RecordRetry("GET", "/fb/page/getTags", 2)
	mc.RecordRateLimitWait(time.Millisecond)
	mc.RecordError("Server", "GET", "/fb/page/getTags")
}

func TestMetricsRecordedThroughClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","data":[]}`))
	}))
	defer server.Close()

	registry := prometheus.NewRegistry()
	mc := NewMetricsCollectorWithRegistry(registry)

	c := newTestClient(t, server.URL, nil)
	c.metrics = mc

	if _, err := c.GetTags(context.Background()); err != nil {
		t.Fatalf("GetTags() returned error: %v", err)
	}

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() returned error: %v", err)
	}

	byName := map[string]bool{}
	for _, f := range families {
		byName[f.GetName()] = true
	}

	for _, want := range []string{
		"manychat_requests_total",
		"manychat_request_duration_seconds",
		"manychat_rate_limit_wait_seconds",
	} {
		if !byName[want] {
			t.Errorf("Expected metric family %s to be recorded", want)
		}
	}
}

func TestMetricsRecordRetryAndError(t *testing.T) {
	registry := prometheus.NewRegistry()
	mc := NewMetricsCollectorWithRegistry(registry)

	mc.RecordRetry("GET", "/fb/page/getTags", 2)
	mc.RecordError("Server", "GET", "/fb/page/getTags")

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() returned error: %v", err)
	}

	found := map[string]float64{}
	for _, f := range families {
		for _, m := range f.GetMetric() {
			if m.GetCounter() != nil {
				found[f.GetName()] += m.GetCounter().GetValue()
			}
		}
	}

	if found["manychat_retries_total"] != 1 {
		t.Errorf("Expected 1 retry recorded, got %v", found["manychat_retries_total"])
	}
	if found["manychat_errors_total"] != 1 {
		t.Errorf("Expected 1 error recorded, got %v", found["manychat_errors_total"])
	}
}
