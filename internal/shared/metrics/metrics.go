package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	applicationsCreatedTotal atomic.Uint64
	applicationsDeletedTotal atomic.Uint64
	jobsCreatedTotal         atomic.Uint64
	resumesUploadedTotal     atomic.Uint64

	transitionsMu    sync.Mutex
	transitionsTotal = map[string]uint64{}

	rateLimitedMu    sync.Mutex
	rateLimitedTotal = map[string]uint64{}

	requestDuration = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000})
)

// IncApplicationCreated counts tracker records created.
func IncApplicationCreated() {
	applicationsCreatedTotal.Add(1)
}

// IncApplicationDeleted counts tracker records deleted.
func IncApplicationDeleted() {
	applicationsDeletedTotal.Add(1)
}

// IncJobCreated counts job postings created.
func IncJobCreated() {
	jobsCreatedTotal.Add(1)
}

// IncResumeUploaded counts résumé uploads.
func IncResumeUploaded() {
	resumesUploadedTotal.Add(1)
}

// IncStatusTransition counts a status change into the given status.
func IncStatusTransition(to string) {
	transitionsMu.Lock()
	defer transitionsMu.Unlock()
	transitionsTotal[to]++
}

// IncRateLimited counts requests rejected by the rate limiter, by group.
func IncRateLimited(group string) {
	rateLimitedMu.Lock()
	defer rateLimitedMu.Unlock()
	rateLimitedTotal[group]++
}

// ObserveRequestDurationMs records an HTTP request duration in milliseconds.
func ObserveRequestDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	requestDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "tracker_applications_created_total", "Total tracker applications created", applicationsCreatedTotal.Load())
	writeCounter(&buf, "tracker_applications_deleted_total", "Total tracker applications deleted", applicationsDeletedTotal.Load())
	writeCounter(&buf, "tracker_jobs_created_total", "Total job postings created", jobsCreatedTotal.Load())
	writeCounter(&buf, "tracker_resumes_uploaded_total", "Total resumes uploaded", resumesUploadedTotal.Load())
	writeLabeledCounter(&buf, "tracker_status_transitions_total", "Status transitions by target status", "to", snapshotCounts(&transitionsMu, transitionsTotal))
	writeLabeledCounter(&buf, "http_rate_limited_total", "Requests rejected by the rate limiter", "group", snapshotCounts(&rateLimitedMu, rateLimitedTotal))
	writeHistogram(&buf, "http_request_duration_ms", "HTTP request duration in milliseconds", requestDuration.Snapshot())
	return buf.String()
}

func snapshotCounts(mu *sync.Mutex, counts map[string]uint64) map[string]uint64 {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]uint64, len(counts))
	for k, v := range counts {
		out[k] = v
	}
	return out
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe adds value to the first bucket whose bound it fits under.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeLabeledCounter(buf *bytes.Buffer, name, help, label string, values map[string]uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s=%q} %d\n", name, label, k, values[k])
	}
}

// writeHistogram emits cumulative buckets as Prometheus expects.
func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
