package metrics

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHistogramCumulativeBuckets(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.count != 3 || snap.sum != 555 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	var buf bytes.Buffer
	writeHistogram(&buf, "x", "test", snap)
	for _, want := range []string{`x_bucket{le="10"} 1`, `x_bucket{le="100"} 2`, `x_bucket{le="+Inf"} 3`, "x_sum 555", "x_count 3"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("expected %q in:\n%s", want, buf.String())
		}
	}
}

func TestRenderIncludesLabelledCounters(t *testing.T) {
	IncAnalysisStarted()
	IncAnalysisCompleted("docx")
	IncAnalysisFailed("parse_failure")
	IncAnalysisFailed("")
	ObserveScore(72)
	ObserveAnalysisDurationMs(-5)

	out := Render()
	for _, want := range []string{
		"# TYPE analysis_started_total counter",
		`analysis_completed_total{format="docx"}`,
		`analysis_failed_total{reason="parse_failure"}`,
		`analysis_failed_total{reason="unknown"}`,
		"# TYPE analysis_score histogram",
		"analysis_duration_ms_count",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestHandlerServesTextFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/metrics", Handler())

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.HasPrefix(resp.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("unexpected content type %q", resp.Header().Get("Content-Type"))
	}
}
