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
	analysisStartedTotal atomic.Uint64
	analysisCompleted    = newCounterVec("format")
	analysisFailed       = newCounterVec("reason")
	commentaryFailed     atomic.Uint64

	analysisDuration = newHistogram([]float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000})
	analysisScore    = newHistogram([]float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100})
)

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted() {
	analysisStartedTotal.Add(1)
}

// IncAnalysisCompleted increments the completed counter for a document format.
func IncAnalysisCompleted(format string) {
	analysisCompleted.Inc(format)
}

// IncAnalysisFailed increments the failed counter for an error code.
func IncAnalysisFailed(reason string) {
	analysisFailed.Inc(reason)
}

// IncCommentaryFailed counts commentary calls that errored or timed out.
func IncCommentaryFailed() {
	commentaryFailed.Add(1)
}

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisDuration.Observe(value)
}

// ObserveScore records an overall score.
func ObserveScore(score int) {
	analysisScore.Observe(float64(score))
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
	writeCounter(&buf, "analysis_started_total", "Total analyses started", analysisStartedTotal.Load())
	writeCounterVec(&buf, "analysis_completed_total", "Total analyses completed by document format", analysisCompleted)
	writeCounterVec(&buf, "analysis_failed_total", "Total analyses failed by error code", analysisFailed)
	writeCounter(&buf, "commentary_failed_total", "Total commentary requests that failed", commentaryFailed.Load())
	writeHistogram(&buf, "analysis_duration_ms", "Analysis duration in milliseconds", analysisDuration.Snapshot())
	writeHistogram(&buf, "analysis_score", "Overall scores produced", analysisScore.Snapshot())
	return buf.String()
}

type counterVec struct {
	mu     sync.Mutex
	label  string
	values map[string]uint64
}

func newCounterVec(label string) *counterVec {
	return &counterVec{label: label, values: make(map[string]uint64)}
}

func (v *counterVec) Inc(value string) {
	if value == "" {
		value = "unknown"
	}
	v.mu.Lock()
	v.values[value]++
	v.mu.Unlock()
}

func (v *counterVec) Snapshot() ([]string, map[string]uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	keys := make([]string, 0, len(v.values))
	out := make(map[string]uint64, len(v.values))
	for k, n := range v.values {
		keys = append(keys, k)
		out[k] = n
	}
	sort.Strings(keys)
	return keys, out
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

// Observe counts value in the first bucket whose bound it does not exceed.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeCounterVec(buf *bytes.Buffer, name, help string, vec *counterVec) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys, values := vec.Snapshot()
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s=%q} %d\n", name, vec.label, k, values[k])
	}
}

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
