package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, c *PrometheusCollector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestPrometheusCollector(t *testing.T) {
	c := NewPrometheusCollector()

	c.ObserveReport("overview", 10*time.Millisecond, nil)
	c.ObserveReport("overview", 20*time.Millisecond, nil)
	c.ObserveReport("overview", time.Millisecond, errors.New("boom"))
	c.RecordCacheHit("overview")
	c.RecordCacheMiss("overview")
	c.RecordCacheMiss("overview")
	c.RecordTransactions("generated", 120)
	c.SetDatasets(3)

	body := scrape(t, c)

	for _, line := range []string{
		`posreport_reports_total{report="overview",result="success"} 2`,
		`posreport_reports_total{report="overview",result="error"} 1`,
		`posreport_report_cache_lookups_total{outcome="hit",report="overview"} 1`,
		`posreport_report_cache_lookups_total{outcome="miss",report="overview"} 2`,
		`posreport_transactions_loaded_total{source="generated"} 120`,
		`posreport_report_duration_seconds_count{report="overview"} 3`,
		`posreport_datasets 3`,
	} {
		assert.Contains(t, body, line)
	}
}

func TestPrometheusCollector_IsolatedRegistries(t *testing.T) {
	a, b := NewPrometheusCollector(), NewPrometheusCollector()
	a.SetDatasets(5)

	assert.Contains(t, scrape(t, a), "posreport_datasets 5")
	assert.Contains(t, scrape(t, b), "posreport_datasets 0")
	assert.NotNil(t, a.Registry())
}

func TestNoopCollector(t *testing.T) {
	var c Collector = NoopCollector{}
	assert.NotPanics(t, func() {
		c.ObserveReport("x", time.Second, nil)
		c.RecordCacheHit("x")
		c.RecordCacheMiss("x")
		c.RecordTransactions("x", 1)
		c.SetDatasets(1)
	})
}
