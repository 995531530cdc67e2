// Package campaign is the campaign resource client.
package campaign

import (
	"context"
	"fmt"
	"net/http"

	"github.com/s0up4200/adkit/api"
	"github.com/s0up4200/adkit/merge"
)

const (
	detailsPath = "/campaign/details/%d"
	createPath  = "/campaign/add"
	updatePath  = "/campaign/update/%d"
)

// Response is the envelope returned by every campaign endpoint
type Response = api.Response[Details]

// Client manages campaigns
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

// Retrieve fetches one campaign
func (c *Client) Retrieve(ctx context.Context, id int64) (*Response, error) {
	return api.Execute[Response](ctx, c.cfg, c.apiKey, fmt.Sprintf(detailsPath, id), http.MethodGet, nil)
}

// Create adds a campaign. Fields left unset fall back to DefaultTemplate.
func (c *Client) Create(ctx context.Context, campaign *Campaign) (*Response, error) {
	payload, err := merge.ToMap(campaign)
	if err != nil {
		return nil, fmt.Errorf("invalid campaign: %w", err)
	}
	return api.Execute[Response](ctx, c.cfg, c.apiKey, createPath, http.MethodPost, merge.Merge(DefaultTemplate(), payload))
}

// Update replaces the whole campaign
func (c *Client) Update(ctx context.Context, id int64, campaign *Campaign) (*Response, error) {
	return api.Execute[Response](ctx, c.cfg, c.apiKey, fmt.Sprintf(updatePath, id), http.MethodPut, campaign)
}

// PartialUpdate replaces only the fields set in campaign
func (c *Client) PartialUpdate(ctx context.Context, id int64, campaign *Campaign) (*Response, error) {
	return api.Execute[Response](ctx, c.cfg, c.apiKey, fmt.Sprintf(updatePath, id), http.MethodPatch, campaign)
}
