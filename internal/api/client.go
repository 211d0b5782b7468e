// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"resty.dev/v3"

	apimodel "github.com/gatehouse-id/gatehouse/internal/api/model"
	"github.com/gatehouse-id/gatehouse/internal/console/overview"
	"github.com/gatehouse-id/gatehouse/internal/console/sourceview"
	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

// ErrViewNotFound mirrors the server's 404 for view session routes.
var ErrViewNotFound = errors.New("view not found")

type Client struct {
	endpoint string
	resty    *resty.Client
}

func NewClient(cfg pkgmodel.APIConfig, net *http.Client) *Client {
	client := resty.New()

	if net != nil {
		client = resty.NewWithClient(net)
	}

	return &Client{
		endpoint: fmt.Sprintf("%s:%d", cfg.URL, cfg.Port),
		resty:    client,
	}
}

// OpenView opens a view session and returns its ID.
func (c *Client) OpenView() (string, error) {
	var response apimodel.OpenViewResponse

	resp, err := c.resty.R().
		SetResult(&response).
		Post(c.endpoint + ViewsRoute)
	if err != nil {
		return "", fmt.Errorf("failed to open view: %w", err)
	}

	//nolint:errcheck
	defer resp.Body.Close()

	if resp.StatusCode() != http.StatusCreated {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	return response.ViewID, nil
}

// ShowSource asks the session to present a source. The server answers as
// soon as the slug is accepted; poll View for the resolution outcome.
func (c *Client) ShowSource(viewID string, slug string) error {
	resp, err := c.resty.R().
		SetContentType("application/json").
		SetBody(apimodel.ShowSourceRequest{Slug: slug}).
		Put(c.endpoint + viewRoute(viewID) + "/source")
	if err != nil {
		return fmt.Errorf("failed to set source: %w", err)
	}

	//nolint:errcheck
	defer resp.Body.Close()

	switch resp.StatusCode() {
	case http.StatusAccepted:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrViewNotFound, viewID)
	default:
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}
}

// View fetches what the session should display right now.
func (c *Client) View(viewID string) (*sourceview.View, error) {
	resp, err := c.resty.R().
		Get(c.endpoint + viewRoute(viewID))
	if err != nil {
		return nil, fmt.Errorf("failed to get view: %w", err)
	}

	//nolint:errcheck
	defer resp.Body.Close()

	switch resp.StatusCode() {
	case http.StatusOK:
		var view sourceview.View
		if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return &view, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrViewNotFound, viewID)
	default:
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}
}

// CloseView closes a view session.
func (c *Client) CloseView(viewID string) error {
	resp, err := c.resty.R().
		Delete(c.endpoint + viewRoute(viewID))
	if err != nil {
		return fmt.Errorf("failed to close view: %w", err)
	}

	//nolint:errcheck
	defer resp.Body.Close()

	switch resp.StatusCode() {
	case http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrViewNotFound, viewID)
	default:
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}
}

// Overview fetches the admin overview snapshot.
func (c *Client) Overview() (*overview.Snapshot, error) {
	resp, err := c.resty.R().
		Get(c.endpoint + OverviewRoute)
	if err != nil {
		return nil, fmt.Errorf("failed to get overview: %w", err)
	}

	//nolint:errcheck
	defer resp.Body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var snapshot overview.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &snapshot, nil
}

func (c *Client) Stats() (*apimodel.Stats, error) {
	resp, err := c.resty.R().
		Get(c.endpoint + StatsRoute)
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			return nil, syscall.ECONNREFUSED
		}

		return nil, err
	}

	//nolint:errcheck
	defer resp.Body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var stats apimodel.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &stats, nil
}

func (c *Client) WaitOnAvailable() bool {
	for {
		resp, _ := c.resty.R().Get(c.endpoint + HealthRoute)
		if resp.StatusCode() == 200 {
			return true
		}

		time.Sleep(1 * time.Second)
	}
}

func viewRoute(viewID string) string {
	return strings.Replace(ViewRoute, ":id", viewID, 1)
}
