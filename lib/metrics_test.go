package lib

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	// none of these may panic on a nil receiver
	m.Start()
	m.Stop()
	m.UpdateCall("buy", nil, time.Second)
	m.UpdateSwap("con_token1", "currency", 1, 1)
	m.UpdateBurn("con_amm", 1)
	m.UpdatePool("con_token1", 1, 1, 1)
	require.NoError(t, m.UpdateProcessMetrics())
}

func TestMetricsUpdates(t *testing.T) {
	// two instances must not collide on registration
	_ = NewMetricsServer(DefaultMetricsConfig(), NewNullLogger())
	m := NewMetricsServer(DefaultMetricsConfig(), NewNullLogger())
	m.UpdateCall("buy", nil, time.Millisecond)
	m.UpdateCall("buy", ErrInvalidArgument(), time.Millisecond)
	m.UpdateCall("buy", nil, time.Millisecond)
	m.UpdateSwap("con_token1", "currency", 10, 90.5)
	m.UpdateBurn("con_amm", 0.25)
	m.UpdatePool("con_token1", 110, 909.5, 0.12)
	require.Equal(t, float64(2), testutil.ToFloat64(m.Calls.WithLabelValues("buy", "committed")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.Calls.WithLabelValues("buy", "rejected")))
	require.Equal(t, float64(10), testutil.ToFloat64(m.SwapVolume.WithLabelValues("con_token1", "currency")))
	require.Equal(t, 0.25, testutil.ToFloat64(m.Burned.WithLabelValues("con_amm")))
	require.Equal(t, float64(110), testutil.ToFloat64(m.ReserveCurrency.WithLabelValues("con_token1")))
	// the endpoint serves the registry of this instance
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, metricsPattern, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "amm_calls_total")
}

func TestUpdateProcessMetrics(t *testing.T) {
	m := NewMetricsServer(DefaultMetricsConfig(), NewNullLogger())
	require.NoError(t, m.UpdateProcessMetrics())
	require.Greater(t, testutil.ToFloat64(m.ResidentMemory), float64(0))
}
