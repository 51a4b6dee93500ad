//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/life-engine/pkg/state"
)

var apiBaseURL string

func TestMain(m *testing.M) {
	apiBaseURL = os.Getenv("API_BASE_URL")
	if apiBaseURL == "" {
		apiBaseURL = "http://localhost:8080"
	}

	fmt.Printf("Running Life Engine Integration Tests\n")
	fmt.Printf("   API Base URL: %s\n", apiBaseURL)

	code := m.Run()
	os.Exit(code)
}

var client = &http.Client{Timeout: 10 * time.Second}

func postJSON(t *testing.T, path string, payload any, out any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(payload))
	}
	resp, err := client.Post(apiBaseURL+path, "application/json", &buf)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func getJSON(t *testing.T, path string, out any) *http.Response {
	t.Helper()
	resp, err := client.Get(apiBaseURL + path)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

type sessionResponse struct {
	State *state.GameState `json:"state"`
}

type noticesResponse struct {
	Notices []string `json:"notices"`
}

// TestSessionLifecycle walks a full play session against a live API:
// create, act, travel, drain notices, and delete.
func TestSessionLifecycle(t *testing.T) {
	resp := getJSON(t, "/health", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "API is not healthy")

	var gs state.GameState
	resp = postJSON(t, "/v1/sessions", map[string]string{"name": "Integ", "sprite": "cowok"}, &gs)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, state.DefaultMoney, gs.Money)
	require.Equal(t, state.LocationRumah, gs.Location)

	base := fmt.Sprintf("/v1/sessions/%s", gs.ID)
	defer func() {
		req, _ := http.NewRequest(http.MethodDelete, apiBaseURL+base, nil)
		resp, err := client.Do(req)
		if err == nil {
			resp.Body.Close()
		}
	}()

	// Eat at the dining table.
	var action struct {
		State *state.GameState `json:"state"`
	}
	resp = postJSON(t, base+"/actions", map[string]any{"zone_id": "table", "action_index": 0}, &action)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, state.DefaultHour+1, action.State.Clock.Hour)

	// Travel to the beach.
	var sr sessionResponse
	resp = postJSON(t, base+"/travel", map[string]string{"destination": "Pantai"}, &sr)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, state.LocationPantai, sr.State.Location)
	require.Equal(t, state.DefaultMoney-50, sr.State.Money)

	// Notices accumulated along the way drain exactly once.
	var nr noticesResponse
	resp = getJSON(t, base+"/notices", &nr)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, nr.Notices)

	resp = getJSON(t, base+"/notices", &nr)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, nr.Notices)

	// State survives a re-read.
	resp = getJSON(t, base, &sr)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Integ", sr.State.Name)
	require.Equal(t, state.LocationPantai, sr.State.Location)
}
