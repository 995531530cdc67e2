package feed

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

func TestClient(t *testing.T) {
	var (
		method string
		path   string
		body   map[string]any
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		body = nil
		json.NewDecoder(r.Body).Decode(&body)
		io.WriteString(w, `{"status":"success","code":200,"records":1,"data":{"feed":{"id":55,"name":"rtb-eu","max_qps":500}}}`)
	}))
	defer server.Close()

	client := NewClient("test-key", api.NewConfig(api.WithBaseURL(server.URL)))
	ctx := context.Background()

	t.Run("retrieve", func(t *testing.T) {
		resp, err := client.Retrieve(ctx, 55)
		require.NoError(t, err)

		assert.Equal(t, http.MethodGet, method)
		assert.Equal(t, "/feed/details/55", path)
		assert.Equal(t, int64(55), resp.Data.Feed.ID)
		assert.Equal(t, "rtb-eu", *resp.Data.Feed.Name)
		assert.Equal(t, 500, *resp.Data.Feed.MaxQPS)
	})

	t.Run("create uses the shared add endpoint without defaults", func(t *testing.T) {
		_, err := client.Create(ctx, &Feed{Name: api.String("rtb-eu"), Countries: []string{"DE"}})
		require.NoError(t, err)

		assert.Equal(t, http.MethodPost, method)
		assert.Equal(t, "/campaign/add", path)
		assert.Equal(t, map[string]any{"name": "rtb-eu", "countries": []any{"DE"}}, body)
	})

	t.Run("update", func(t *testing.T) {
		_, err := client.Update(ctx, 55, &Feed{BidFloor: api.Float64(0.1)})
		require.NoError(t, err)

		assert.Equal(t, http.MethodPut, method)
		assert.Equal(t, "/feed/update/55", path)
		assert.Equal(t, map[string]any{"bid_floor": 0.1}, body)
	})
}
