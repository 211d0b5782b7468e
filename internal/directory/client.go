// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package directory

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"resty.dev/v3"

	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

const (
	sourcesRoute       = "/api/v3/sources"
	latestReleaseRoute = "/api/v3/releases/gatehouse/latest"
)

// Client talks to the identity provider's directory API. It is the
// collaborator that turns a source slug into a descriptor; it performs no
// retries of its own and owns the request timeout.
type Client struct {
	endpoint string
	resty    *resty.Client
}

func NewClient(cfg pkgmodel.DirectoryConfig) *Client {
	client := resty.New()

	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	if cfg.Token != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.Token)
	}

	return &Client{
		endpoint: cfg.URL,
		resty:    client,
	}
}

// Source resolves a slug to its descriptor. A missing slug yields
// ErrSourceNotFound; everything else surfaces as a TransportError.
func (c *Client) Source(ctx context.Context, slug string) (*pkgmodel.Source, error) {
	url := c.endpoint + sourcesRoute + "/" + slug

	resp, err := c.resty.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, &TransportError{Endpoint: url, Err: err}
	}

	//nolint:errcheck
	defer resp.Body.Close()

	switch resp.StatusCode() {
	case http.StatusOK:
		var source pkgmodel.Source
		if err := decode(resp.Body, &source); err != nil {
			return nil, &TransportError{Endpoint: url, Err: err}
		}
		return &source, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, slug)
	default:
		return nil, &TransportError{
			Endpoint: url,
			Err:      fmt.Errorf("unexpected status code: %d", resp.StatusCode()),
		}
	}
}

// Sources lists every source the directory knows about. Used by the
// overview collector, never by the view core.
func (c *Client) Sources(ctx context.Context) ([]pkgmodel.Source, error) {
	url := c.endpoint + sourcesRoute

	resp, err := c.resty.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, &TransportError{Endpoint: url, Err: err}
	}

	//nolint:errcheck
	defer resp.Body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, &TransportError{
			Endpoint: url,
			Err:      fmt.Errorf("unexpected status code: %d", resp.StatusCode()),
		}
	}

	var sources []pkgmodel.Source
	if err := decode(resp.Body, &sources); err != nil {
		return nil, &TransportError{Endpoint: url, Err: err}
	}

	return sources, nil
}

// LatestVersion reports the most recent released gatehouse version known to
// the directory. The directory fronts the release feed, so air-gapped
// deployments simply answer 404 here.
func (c *Client) LatestVersion(ctx context.Context) (string, error) {
	url := c.endpoint + latestReleaseRoute

	resp, err := c.resty.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", &TransportError{Endpoint: url, Err: err}
	}

	//nolint:errcheck
	defer resp.Body.Close()

	if resp.StatusCode() != http.StatusOK {
		return "", &TransportError{
			Endpoint: url,
			Err:      fmt.Errorf("unexpected status code: %d", resp.StatusCode()),
		}
	}

	var release struct {
		Version string `json:"Version"`
	}
	if err := decode(resp.Body, &release); err != nil {
		return "", &TransportError{Endpoint: url, Err: err}
	}

	return release.Version, nil
}

func decode(body io.Reader, out any) error {
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
