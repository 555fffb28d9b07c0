package github

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"resty.dev/v3"

	"github.com/pigi/proxy/internal/core/models"
	"github.com/pigi/proxy/internal/core/services"
)

const (
	userAgent  = "pigi"
	apiVersion = "2022-11-28"
	acceptJSON = "application/vnd.github+json"
	acceptRaw  = "application/octet-stream"
)

// Client talks to the GitHub releases API with one fixed credential. A new
// instance is built for every proxied request; the credential, when present,
// rides along as an Authorization header on every call.
type Client struct {
	rc *resty.Client
}

// New creates a Client for the given API base URL. An empty token means
// unauthenticated access.
func New(baseURL, token string) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("User-Agent", userAgent).
		SetHeader("X-GitHub-Api-Version", apiVersion).
		SetHeader("Accept", acceptJSON)
	if token != "" {
		rc.SetHeader("Authorization", "token "+token)
	}
	return &Client{rc: rc}
}

// ListAssets lists every release asset of a repository, flattened across all
// releases in the order the API returned them.
func (c *Client) ListAssets(ctx context.Context, owner, repo string) ([]models.Asset, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/repos/%s/%s/releases", owner, repo))
	if err != nil {
		return nil, fmt.Errorf("%w: listing releases for %s/%s: %v", services.ErrUpstream, owner, repo, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: listing releases for %s/%s: status %d", services.ErrUpstream, owner, repo, resp.StatusCode())
	}

	var releases []models.Release
	if err := json.Unmarshal(resp.Bytes(), &releases); err != nil {
		return nil, fmt.Errorf("%w: decoding release listing for %s/%s: %v", services.ErrUpstream, owner, repo, err)
	}

	var assets []models.Asset
	for _, release := range releases {
		assets = append(assets, release.Assets...)
	}
	return assets, nil
}

// OpenAsset opens the raw byte stream of a single asset. The response body is
// handed back unread so the caller can forward it incrementally; the caller
// owns closing it.
func (c *Client) OpenAsset(ctx context.Context, owner, repo string, assetID int64) (*services.AssetStream, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Accept", acceptRaw).
		SetDoNotParseResponse(true).
		Get(fmt.Sprintf("/repos/%s/%s/releases/assets/%d", owner, repo, assetID))
	if err != nil {
		return nil, fmt.Errorf("%w: opening asset %d of %s/%s: %v", services.ErrUpstream, assetID, owner, repo, err)
	}
	if resp.IsError() {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: opening asset %d of %s/%s: status %d", services.ErrUpstream, assetID, owner, repo, resp.StatusCode())
	}

	length := int64(-1)
	if cl := resp.Header().Get("Content-Length"); cl != "" {
		if v, err := strconv.ParseInt(cl, 10, 64); err == nil {
			length = v
		}
	}

	return &services.AssetStream{
		Body:          resp.Body,
		ContentType:   resp.Header().Get("Content-Type"),
		ContentLength: length,
	}, nil
}
