package soap

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

	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestClientCallPostsEnvelope(t *testing.T) {
	var gotBody string
	var gotContentType string
	var gotAction string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		gotContentType = r.Header.Get("Content-Type")
		gotAction = r.Header.Get("SOAPAction")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(`<Envelope/>`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, testLogger())
	resp, err := client.Call(context.Background(), "SectorCode", "<request/>")
	require.NoError(t, err)
	assert.Equal(t, `<Envelope/>`, resp)
	assert.Equal(t, "<request/>", gotBody)
	assert.Equal(t, "text/xml; charset=utf-8", gotContentType)
	assert.Equal(t, BookingNamespace+"SectorCode", gotAction)
}

func TestClientCallNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, testLogger())
	_, err := client.Call(context.Background(), "CheckBalance", "<request/>")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeTransport))
}

func TestClientCallConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed before use

	client := NewClient(srv.URL, time.Second, testLogger())
	_, err := client.Call(context.Background(), "SectorCode", "<request/>")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeTransport))
}

func TestClientCallContextCancellation(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 30*time.Second, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()
	_, err := client.Call(ctx, "Reservation", "<request/>")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeTransport))
}
