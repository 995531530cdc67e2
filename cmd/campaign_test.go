package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCampaignServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id int
		if _, err := fmt.Sscanf(r.URL.Path, "/campaign/details/%d", &id); err != nil {
			io.WriteString(w, `{"status":"success","code":200,"records":1,"data":{"campaign":{"id":9}}}`)
			return
		}
		if id == 404 {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"status":"failed","code":404,"messages":{"id":["not found"]}}`)
			return
		}
		status := "active"
		if id%2 == 0 {
			status = "paused"
		}
		fmt.Fprintf(w, `{"status":"success","code":200,"records":1,"data":{"campaign":{"id":%d,"general_information":{"status":%q}}}}`, id, status)
	}))
	t.Cleanup(server.Close)

	return server
}

func runCLI(t *testing.T, server *httptest.Server, stdin string, args ...string) (string, error) {
	t.Helper()

	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ADKIT_API_KEY", "test-key")
	t.Setenv("ADKIT_API_BASE_URL", server.URL)
	t.Setenv("ADKIT_LOGGING_LEVEL", "error")

	filterExpr = ""
	payloadFile = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func decodeIDs(t *testing.T, output string) []int64 {
	t.Helper()

	var responses []struct {
		Data struct {
			Campaign struct {
				ID int64 `json:"id"`
			} `json:"campaign"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &responses))

	ids := make([]int64, 0, len(responses))
	for _, r := range responses {
		ids = append(ids, r.Data.Campaign.ID)
	}
	return ids
}

func TestCampaignGet(t *testing.T) {
	server := newCampaignServer(t)

	out, err := runCLI(t, server, "", "campaign", "get", "1", "2", "3")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, decodeIDs(t, out))
}

func TestCampaignGetFilter(t *testing.T) {
	server := newCampaignServer(t)

	out, err := runCLI(t, server, "", "campaign", "get", "1", "2", "3", "--filter", `general_information.status == "active"`)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, decodeIDs(t, out))
}

func TestCampaignGetPartialFailure(t *testing.T) {
	server := newCampaignServer(t)

	out, err := runCLI(t, server, "", "campaign", "get", "1", "404")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Equal(t, []int64{1}, decodeIDs(t, out))
}

func TestCampaignCreateFromStdin(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/campaign/add", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&body)
		io.WriteString(w, `{"status":"success","code":200,"records":1,"data":{"campaign":{"id":77}}}`)
	}))
	t.Cleanup(server.Close)

	out, err := runCLI(t, server, "general_information:\n  name: From YAML\n", "campaign", "create", "--file", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"id":77`)

	info := body["general_information"].(map[string]any)
	assert.Equal(t, "From YAML", info["name"])
	assert.Equal(t, "active", info["status"])
}

func TestFeedUpdateFromFile(t *testing.T) {
	var (
		method string
		path   string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		io.WriteString(w, `{"status":"success","code":200,"records":1,"data":{"feed":{"id":5}}}`)
	}))
	t.Cleanup(server.Close)

	payload := filepath.Join(t.TempDir(), "feed.json")
	require.NoError(t, os.WriteFile(payload, []byte(`{"max_qps":100}`), 0o600))

	_, err := runCLI(t, server, "", "feed", "update", "5", "--file", payload)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/feed/update/5", path)
}

func TestInterceptionLowersLogLevel(t *testing.T) {
	server := newCampaignServer(t)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })
	t.Setenv("ADKIT_API_ENABLE_INTERCEPTION", "true")

	_, err := runCLI(t, server, "", "campaign", "get", "1")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.True(t, adkitClient.Config().Verbose())
}
