package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordsAndServes(t *testing.T) {
	c := NewCollector()
	c.ObserveEstimate("FASTEST", true, 20*time.Millisecond)
	c.ObserveEstimate("FASTEST", false, 20*time.Millisecond)
	c.FavoriteChanged(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.RouteEstimates.WithLabelValues("FASTEST", "fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.FavoriteChanges.WithLabelValues("added")))

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "mobility_route_estimates_total")
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveHTTP("GET", "/", 200, time.Millisecond)
		c.EmissionInc("bus")
		c.PersistFailed("routes")
		c.NATSSetConnected(true)
	})
}
