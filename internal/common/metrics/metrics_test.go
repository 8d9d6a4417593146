package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPush_NoURLIsNoop(t *testing.T) {
	assert.NoError(t, Push("", "job"))
}

func TestPush_SendsToGateway(t *testing.T) {
	var gotPath string
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	EmailsProcessed.WithLabelValues("sent", "smtp").Inc()

	require.NoError(t, Push(server.URL, "outreach_test"))
	assert.Equal(t, "/metrics/job/outreach_test", gotPath)
	assert.NotEmpty(t, gotBody)
}

func TestPush_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := Push(server.URL, "outreach_test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), server.URL)
}

func TestEmailsProcessed_Labels(t *testing.T) {
	before := testutil.ToFloat64(EmailsProcessed.WithLabelValues("failed", "ses"))
	EmailsProcessed.WithLabelValues("failed", "ses").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(EmailsProcessed.WithLabelValues("failed", "ses")))
}
