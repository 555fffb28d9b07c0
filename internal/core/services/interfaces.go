package services

import (
	"context"
	"io"

	"github.com/pigi/proxy/internal/core/models"
)

// ReleaseClient performs the two upstream operations the handlers need.
// One client instance carries one credential for the lifetime of a request.
type ReleaseClient interface {
	// ListAssets returns all release assets of a repository, flattened
	// across releases in upstream order.
	ListAssets(ctx context.Context, owner, repo string) ([]models.Asset, error)

	// OpenAsset opens a byte stream for a single asset, resolved by its
	// numeric id. The caller must close the returned stream.
	OpenAsset(ctx context.Context, owner, repo string, assetID int64) (*AssetStream, error)
}

// AssetStream is an open, unconsumed asset download.
type AssetStream struct {
	// Body delivers the asset bytes incrementally; it is never pre-buffered.
	Body io.ReadCloser

	// ContentType is the upstream's Content-Type header, may be empty.
	ContentType string

	// ContentLength is the upstream's Content-Length, -1 when unknown.
	ContentLength int64
}
