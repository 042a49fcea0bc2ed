package blob_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/howbusy/backend/internal/adapters/blob"
	"github.com/howbusy/backend/pkg/config"
	apperrors "github.com/howbusy/backend/pkg/errors"
)

func fetch(t *testing.T, maxBytes int64, url string) ([]byte, error) {
	t.Helper()
	adapter := blob.NewHTTPAdapter(&config.BlobConfig{MaxImageBytes: maxBytes, TimeoutSeconds: 2})
	return adapter.Fetch(context.Background(), url)
}

func TestHTTPAdapter_Fetch(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 64)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	data, err := fetch(t, 1024, server.URL)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestHTTPAdapter_FetchAtLimitSucceeds(t *testing.T) {
	payload := bytes.Repeat([]byte{0x01}, 128)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	data, err := fetch(t, 128, server.URL)
	require.NoError(t, err)
	assert.Len(t, data, 128)
}

func TestHTTPAdapter_FetchOversizeFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(bytes.Repeat([]byte{0x02}, 129))
	}))
	defer server.Close()

	_, err := fetch(t, 128, server.URL)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeImageFetch))
}

func TestHTTPAdapter_FetchNonSuccessStatusFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := fetch(t, 128, server.URL)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeImageFetch))
}

func TestHTTPAdapter_FetchConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := fetch(t, 128, server.URL)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeImageFetch))
}
