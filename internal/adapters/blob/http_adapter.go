package blob

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/howbusy/backend/internal/domain/providers"
	"github.com/howbusy/backend/pkg/config"
	apperrors "github.com/howbusy/backend/pkg/errors"
)

// HTTPAdapter implements the BlobProvider interface over plain HTTP. Venue
// images are small; downloads are capped so a mispublished blob cannot make a
// client buffer arbitrary amounts of data.
type HTTPAdapter struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPAdapter creates a new HTTP blob adapter.
func NewHTTPAdapter(cfg *config.BlobConfig) providers.BlobProvider {
	return &HTTPAdapter{
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		maxBytes: cfg.MaxImageBytes,
	}
}

// Fetch downloads the blob at url, failing on network errors, non-2xx
// responses and payloads over the size cap.
func (a *HTTPAdapter) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewImageFetchError(fmt.Sprintf("invalid image url %q", url), err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, apperrors.NewImageFetchError("image download failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewImageFetchError(fmt.Sprintf("image download returned status %d", resp.StatusCode), nil)
	}
	if resp.ContentLength > a.maxBytes {
		return nil, apperrors.NewImageFetchError(fmt.Sprintf("image exceeds %d byte limit", a.maxBytes), nil)
	}

	// Read one byte past the cap to distinguish at-limit from over-limit.
	data, err := io.ReadAll(io.LimitReader(resp.Body, a.maxBytes+1))
	if err != nil {
		return nil, apperrors.NewImageFetchError("image download failed mid-body", err)
	}
	if int64(len(data)) > a.maxBytes {
		return nil, apperrors.NewImageFetchError(fmt.Sprintf("image exceeds %d byte limit", a.maxBytes), nil)
	}

	return data, nil
}
