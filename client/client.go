// Package client is the entry point of the adkit library.
//
// A Client owns the API key and one shared configuration, and hands both to
// the campaign and feed resource clients it creates:
//
//	c, err := client.New("your-api-key",
//		api.WithTimeout(10*time.Second),
//		api.WithDebug(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := c.Campaigns.Retrieve(ctx, 123)
//	var apiErr *api.Error
//	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
//		// handle missing campaign
//	}
//
// Every call performs exactly one HTTP round trip. Nothing is retried, paged
// or cached.
package client

import (
	"fmt"
	"strings"

	"github.com/s0up4200/adkit/api"
	"github.com/s0up4200/adkit/campaign"
	"github.com/s0up4200/adkit/feed"
)

// Client groups the resource clients
type Client struct {
	Campaigns *campaign.Client
	Feeds     *feed.Client

	cfg *api.Config
}

// New creates a client for apiKey
func New(apiKey string, opts ...api.Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, api.ErrMissingCredential
	}

	cfg := api.NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create adkit client: %w", err)
	}

	return &Client{
		Campaigns: campaign.NewClient(apiKey, cfg),
		Feeds:     feed.NewClient(apiKey, cfg),
		cfg:       cfg,
	}, nil
}

// SetDebug toggles verbose request logging for every resource client
func (c *Client) SetDebug(debug bool) {
	c.cfg.SetDebug(debug)
}

// Config returns the configuration shared by the resource clients
func (c *Client) Config() *api.Config {
	return c.cfg
}
