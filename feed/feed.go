// Package feed is the RTB feed resource client.
package feed

import (
	"context"
	"fmt"
	"net/http"

	"github.com/s0up4200/adkit/api"
)

const (
	detailsPath = "/feed/details/%d"
	// feeds are created through the campaign endpoint
	createPath = "/campaign/add"
	updatePath = "/feed/update/%d"
)

// Feed is an RTB feed
type Feed struct {
	ID          int64    `json:"id,omitempty"`
	Name        *string  `json:"name,omitempty"`
	EndpointURL *string  `json:"endpoint_url,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Protocol    *string  `json:"protocol,omitempty"`
	MaxQPS      *int     `json:"max_qps,omitempty"`
	BidFloor    *float64 `json:"bid_floor,omitempty"`
	Adult       *bool    `json:"adult,omitempty"`
	Countries   []string `json:"countries,omitempty"`
	Devices     []string `json:"devices,omitempty"`
}

// Details is the data section of feed responses
type Details struct {
	Feed Feed `json:"feed"`
}

// Response is the envelope returned by every feed endpoint
type Response = api.Response[Details]

// Client manages RTB feeds
type Client struct {
	apiKey string
	cfg    *api.Config
}

// NewClient binds apiKey and the shared configuration
func NewClient(apiKey string, cfg *api.Config) *Client {
	return &Client{
		apiKey: apiKey,
		cfg:    cfg,
	}
}

// Retrieve fetches one feed
func (c *Client) Retrieve(ctx context.Context, id int64) (*Response, error) {
	return api.Execute[Response](ctx, c.cfg, c.apiKey, fmt.Sprintf(detailsPath, id), http.MethodGet, nil)
}

// Create adds a feed
func (c *Client) Create(ctx context.Context, feed *Feed) (*Response, error) {
	return api.Execute[Response](ctx, c.cfg, c.apiKey, createPath, http.MethodPost, feed)
}

// Update replaces the feed
func (c *Client) Update(ctx context.Context, id int64, feed *Feed) (*Response, error) {
	return api.Execute[Response](ctx, c.cfg, c.apiKey, fmt.Sprintf(updatePath, id), http.MethodPut, feed)
}
