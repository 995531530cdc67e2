package campaign

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/adkit/api"
)

type recordedRequest struct {
	method string
	path   string
	key    string
	body   map[string]any
}

func newTestServer(t *testing.T, response string) (*httptest.Server, *recordedRequest) {
	t.Helper()

	rec := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.key = r.URL.Query().Get("key")
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&rec.body)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, response)
	}))
	t.Cleanup(server.Close)

	return server, rec
}

const okResponse = `{"status":"success","code":200,"records":1,"data":{"campaign":{"id":123,"general_information":{"name":"X"}}}}`

func TestClientEndpoints(t *testing.T) {
	tests := []struct {
		name       string
		call       func(c *Client) (*Response, error)
		wantMethod string
		wantPath   string
	}{
		{
			name:       "retrieve",
			call:       func(c *Client) (*Response, error) { return c.Retrieve(context.Background(), 123) },
			wantMethod: http.MethodGet,
			wantPath:   "/campaign/details/123",
		},
		{
			name:       "create",
			call:       func(c *Client) (*Response, error) { return c.Create(context.Background(), &Campaign{}) },
			wantMethod: http.MethodPost,
			wantPath:   "/campaign/add",
		},
		{
			name: "update",
			call: func(c *Client) (*Response, error) {
				return c.Update(context.Background(), 123, &Campaign{})
			},
			wantMethod: http.MethodPut,
			wantPath:   "/campaign/update/123",
		},
		{
			name: "partial update",
			call: func(c *Client) (*Response, error) {
				return c.PartialUpdate(context.Background(), 123, &Campaign{})
			},
			wantMethod: http.MethodPatch,
			wantPath:   "/campaign/update/123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, rec := newTestServer(t, okResponse)
			client := NewClient("test-key", api.NewConfig(api.WithBaseURL(server.URL)))

			resp, err := tt.call(client)
			require.NoError(t, err)

			assert.Equal(t, tt.wantMethod, rec.method)
			assert.Equal(t, tt.wantPath, rec.path)
			assert.Equal(t, "test-key", rec.key)
			assert.Equal(t, int64(123), resp.Data.Campaign.ID)
			assert.Equal(t, "X", resp.Data.Campaign.Name())
		})
	}
}

func TestCreateMergesDefaults(t *testing.T) {
	server, rec := newTestServer(t, okResponse)
	client := NewClient("test-key", api.NewConfig(api.WithBaseURL(server.URL)))

	campaign := &Campaign{
		GeneralInformation: &GeneralInformation{Name: api.String("X")},
		Budget:             &Budget{MaxBid: api.Float64(1), Budget: api.Float64(10)},
		Targeting:          &Targeting{Countries: []string{"DE"}},
	}

	_, err := client.Create(context.Background(), campaign)
	require.NoError(t, err)

	info := rec.body["general_information"].(map[string]any)
	assert.Equal(t, "X", info["name"])
	assert.Equal(t, false, info["adult"])
	assert.Equal(t, "active", info["status"])

	budget := rec.body["budget"].(map[string]any)
	assert.Equal(t, float64(1), budget["max_bid"])
	assert.Equal(t, float64(10), budget["budget"])
	assert.Equal(t, "even", budget["pacing"])

	targeting := rec.body["targeting"].(map[string]any)
	assert.Equal(t, []any{"DE"}, targeting["countries"])
	assert.Equal(t, []any{}, targeting["devices"])

	// the caller's payload and the template are untouched
	assert.Nil(t, campaign.GeneralInformation.Adult)
	assert.Nil(t, campaign.Schedule)
	assert.Equal(t, []any{}, DefaultTemplate()["targeting"].(map[string]any)["countries"])
}

func TestUpdateSendsPayloadUnchanged(t *testing.T) {
	server, rec := newTestServer(t, okResponse)
	client := NewClient("test-key", api.NewConfig(api.WithBaseURL(server.URL)))

	_, err := client.PartialUpdate(context.Background(), 123, &Campaign{
		Budget: &Budget{MaxBid: api.Float64(0.25)},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"budget": map[string]any{"max_bid": 0.25}}, rec.body)
}

func TestRetrieveNotFound(t *testing.T) {
	server, _ := newTestServer(t, `{"status":"failed","code":404,"messages":{"id":["not found"]}}`)
	client := NewClient("test-key", api.NewConfig(api.WithBaseURL(server.URL)))

	resp, err := client.Retrieve(context.Background(), 1)
	assert.Nil(t, resp)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, map[string][]string{"id": {"not found"}}, apiErr.Messages)
}
