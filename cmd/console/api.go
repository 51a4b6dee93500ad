package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jwebster45206/life-engine/internal/handlers"
	"github.com/jwebster45206/life-engine/pkg/state"
	"github.com/jwebster45206/life-engine/pkg/world"
)

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// decodeResponse reads the body and decodes into out, surfacing the API
// error message on non-2xx statuses.
func decodeResponse(resp *http.Response, wantStatus int, out interface{}) error {
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		var errorResp handlers.ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return fmt.Errorf("%s", errorResp.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func postJSON(client *http.Client, url string, payload interface{}, wantStatus int, out interface{}) error {
	var buf bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&buf).Encode(payload); err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}
	resp, err := client.Post(url, "application/json", &buf)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	return decodeResponse(resp, wantStatus, out)
}

func createSession(client *http.Client, baseURL, name, sprite string) (*state.GameState, error) {
	var gs state.GameState
	err := postJSON(client, baseURL+"/v1/sessions",
		handlers.CreateSessionRequest{Name: name, Sprite: sprite},
		http.StatusCreated, &gs)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &gs, nil
}

func getSession(client *http.Client, baseURL string, id uuid.UUID) (*handlers.SessionResponse, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/sessions/%s", baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	var sr handlers.SessionResponse
	if err := decodeResponse(resp, http.StatusOK, &sr); err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &sr, nil
}

func executeAction(client *http.Client, baseURL string, id uuid.UUID, zoneID string, actionIndex int) (*handlers.ActionResponse, error) {
	var ar handlers.ActionResponse
	err := postJSON(client,
		fmt.Sprintf("%s/v1/sessions/%s/actions", baseURL, id),
		handlers.ActionRequest{ZoneID: zoneID, ActionIndex: actionIndex},
		http.StatusOK, &ar)
	if err != nil {
		return nil, err
	}
	return &ar, nil
}

func finishActivity(client *http.Client, baseURL string, id uuid.UUID) (*handlers.SessionResponse, error) {
	var sr handlers.SessionResponse
	err := postJSON(client,
		fmt.Sprintf("%s/v1/sessions/%s/activity/finish", baseURL, id),
		nil, http.StatusOK, &sr)
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func travel(client *http.Client, baseURL string, id uuid.UUID, dest state.Location) (*handlers.SessionResponse, error) {
	var sr handlers.SessionResponse
	err := postJSON(client,
		fmt.Sprintf("%s/v1/sessions/%s/travel", baseURL, id),
		handlers.TravelRequest{Destination: dest},
		http.StatusOK, &sr)
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func useItem(client *http.Client, baseURL string, id uuid.UUID, index int) (*handlers.ItemResponse, error) {
	var ir handlers.ItemResponse
	err := postJSON(client,
		fmt.Sprintf("%s/v1/sessions/%s/items/use", baseURL, id),
		handlers.ItemRequest{Index: index},
		http.StatusOK, &ir)
	if err != nil {
		return nil, err
	}
	return &ir, nil
}

func discardItem(client *http.Client, baseURL string, id uuid.UUID, index int) (*handlers.ItemResponse, error) {
	var ir handlers.ItemResponse
	err := postJSON(client,
		fmt.Sprintf("%s/v1/sessions/%s/items/discard", baseURL, id),
		handlers.ItemRequest{Index: index},
		http.StatusOK, &ir)
	if err != nil {
		return nil, err
	}
	return &ir, nil
}

func getNotices(client *http.Client, baseURL string, id uuid.UUID) ([]string, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/sessions/%s/notices", baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	var nr handlers.NoticesResponse
	if err := decodeResponse(resp, http.StatusOK, &nr); err != nil {
		return nil, err
	}
	return nr.Notices, nil
}

func getWorld(client *http.Client, baseURL string) (*world.World, error) {
	resp, err := client.Get(baseURL + "/v1/world")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	var w world.World
	if err := decodeResponse(resp, http.StatusOK, &w); err != nil {
		return nil, fmt.Errorf("failed to get world: %w", err)
	}
	return &w, nil
}
