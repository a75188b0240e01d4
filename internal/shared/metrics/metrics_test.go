package metrics

import (
	"strings"
	"testing"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.count != 3 {
		t.Fatalf("expected count 3, got %d", snap.count)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("unexpected bucket counts %v", snap.counts)
	}
}

func TestRenderIncludesTransitions(t *testing.T) {
	IncStatusTransition("offer")
	IncApplicationCreated()
	IncRateLimited("WRITE")

	out := Render()
	if !strings.Contains(out, `tracker_status_transitions_total{to="offer"}`) {
		t.Fatalf("expected labeled transition counter, got:\n%s", out)
	}
	if !strings.Contains(out, `http_rate_limited_total{group="WRITE"}`) {
		t.Fatalf("expected rate limited counter, got:\n%s", out)
	}
	if !strings.Contains(out, "# TYPE http_request_duration_ms histogram") {
		t.Fatalf("expected request histogram")
	}
	if !strings.Contains(out, `http_request_duration_ms_bucket{le="+Inf"}`) {
		t.Fatalf("expected +Inf bucket")
	}
}
