package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"FinVault/internal/domain/models"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordOutcome("Rare_Materials_Gold", models.StatusStored)
	r.RecordOutcome("Rare_Materials_Gold", models.StatusStored)
	r.RecordError("network")
	r.RecordLastPrice("Rare_Materials_Gold", 2345.68)
	r.RecordPruned("Rare_Materials_Gold", 3)
	r.RecordRun(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 4.2)

	require.Equal(t, 2.0, gathered(t, reg, "finvault_instrument_outcomes_total"))
	require.Equal(t, 1.0, gathered(t, reg, "finvault_errors_total"))
	require.Equal(t, 2345.68, gathered(t, reg, "finvault_last_price"))
	require.Equal(t, 3.0, gathered(t, reg, "finvault_pruned_rows_total"))
	require.Equal(t, float64(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).Unix()), gathered(t, reg, "finvault_last_run_target_date_seconds"))
}

// gathered returns the value of the first series of a counter or gauge family.
func gathered(t *testing.T, g prometheus.Gatherer, name string) float64 {
	t.Helper()
	mfs, err := g.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		m := mf.GetMetric()[0]
		if c := m.GetCounter(); c != nil {
			return c.GetValue()
		}
		return m.GetGauge().GetValue()
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestPush(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	New(reg).RecordError("schema")

	require.NoError(t, Push(context.Background(), srv.URL, "finvault_fetch", reg))
	require.Equal(t, "/metrics/job/finvault_fetch", gotPath)

	require.NoError(t, Push(context.Background(), "", "x", reg))
}
