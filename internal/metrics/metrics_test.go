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

func TestStatusDetailChanged(t *testing.T) {
	t.Parallel()

	m := New()

	m.StatusDetailChanged("", "Dokumen kosong")
	m.StatusDetailChanged("Dokumen kosong", "Menunggu Approval")
	m.StatusDetailChanged("Dokumen kosong", "Menunggu Approval")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusTransitions.WithLabelValues("none", "Dokumen kosong")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.statusTransitions.WithLabelValues("Dokumen kosong", "Menunggu Approval")))
}

func TestBlobDeleteFailed(t *testing.T) {
	t.Parallel()

	m := New()
	m.BlobDeleteFailed()
	m.BlobDeleteFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.blobDeleteFailed))
}

func TestHandlerExposesCollectors(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveRequest("/api/ipbs", http.MethodGet, http.StatusOK, 20*time.Millisecond)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `ipbtracker_http_requests_total{code="200",method="GET",route="/api/ipbs"} 1`)
	assert.Contains(t, string(body), "ipbtracker_http_request_duration_seconds")
}
