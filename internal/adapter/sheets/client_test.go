package sheets

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/ice-report-service/internal/domain"
)

const gvizBody = `/*O_o*/
google.visualization.Query.setResponse({"version":"0.6","status":"ok","table":{
"cols":[{"id":"A","label":"Date"},{"id":"B","label":"Lake"},{"id":"C","label":"Thickness (inches)"}],
"rows":[
{"c":[{"v":"Date(2025,11,30)"},{"v":"Harriet"},{"v":8.5}]},
{"c":[{"v":null,"f":""},{"v":"Nokomis"},{"v":null,"f":"5 5/8"}]},
{"c":[{"v":"Date(2026,0,2)"},{"v":"Calhoun"}]}
]}});`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetch_DecodesCSVExport(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Date,Lake,Thickness (inches)\n12/30/2025,Harriet,8.5\n"))
	})

	rows, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Harriet", rows[0]["Lake"])
	assert.Equal(t, "8.5", rows[0]["Thickness (inches)"])
}

func TestFetch_ServerErrorIsTransport(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := c.Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestFetch_HTMLBodyIsTransport(t *testing.T) {
	// A sheet with broken sharing permissions serves a login page with 200.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<!DOCTYPE html><html><body>Sign in</body></html>"))
	})

	_, err := c.Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestFetch_UnreachableHostIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := c.Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestDecodeExport_GVizEnvelope(t *testing.T) {
	rows, err := DecodeExport(gvizBody)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Date(2025,11,30)", rows[0]["Date"], "date literals pass through as text")
	assert.Equal(t, "8.5", rows[0]["Thickness (inches)"], "numeric cells render full precision")
	assert.Equal(t, "5 5/8", rows[1]["Thickness (inches)"], "null values fall back to the formatted string")
	assert.Equal(t, "", rows[2]["Thickness (inches)"], "missing trailing cells become empty text")
}

func TestDecodeExport_GVizColumnIDWhenLabelBlank(t *testing.T) {
	body := `google.visualization.Query.setResponse({"table":{
"cols":[{"id":"A","label":""},{"id":"B","label":"Lake"}],
"rows":[{"c":[{"v":"x"},{"v":"Harriet"}]}]}});`

	rows, err := DecodeExport(body)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "x", rows[0]["A"])
}

func TestDecodeExport_GVizErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no json object", "/*O_o*/\ngoogle.visualization.Query.setResponse garbage"},
		{"malformed json", `google.visualization.Query.setResponse({"table":{"cols":[}});`},
		{"error status", `google.visualization.Query.setResponse({"status":"error","table":{"cols":[{"id":"A"}]}});`},
		{"no columns", `google.visualization.Query.setResponse({"status":"ok","table":{"cols":[]}});`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeExport(tt.body)
			assert.ErrorIs(t, err, domain.ErrDecode)
		})
	}
}

func TestDecodeExport_PlainCSVFallback(t *testing.T) {
	rows, err := DecodeExport("Lake,Info\nHarriet,\"clear, solid\"\n")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "clear, solid", rows[0]["Info"])
}
