package providers

import "context"

// BlobProvider resolves venue image URLs to raw image bytes. It is a display
// concern: presentation layers call it, the aggregation core never does.
type BlobProvider interface {
	// Fetch downloads the blob at url, subject to the adapter's size cap.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
