package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/statusgrid/internal/domain"
	"github.com/hamed0406/statusgrid/internal/history"
)

func setupServer(t *testing.T, apiKeys []string) *httptest.Server {
	t.Helper()
	dir := t.TempDir()

	store := history.NewStore(filepath.Join(dir, "data", "results.json"), time.UTC, zap.NewNop())
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	h := history.History{
		"example.com": {
			{Resource: "example.com", Outcome: domain.OutcomeDown, Timestamp: now.Add(-2 * time.Hour)},
			{Resource: "example.com", Outcome: domain.OutcomeUp, Timestamp: now.Add(-time.Hour)},
		},
	}
	if err := store.Save(h); err != nil {
		t.Fatalf("seed history: %v", err)
	}

	targets := []domain.Target{
		{ID: "example.com", Name: "Example"},
		{ID: "fresh.example", Name: "Fresh"},
	}
	srv := NewServer(zap.NewNop(), store, targets, dir)
	ts := httptest.NewServer(srv.Router(apiKeys))
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthz(t *testing.T) {
	ts := setupServer(t, nil)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestStatus_SnapshotPerConfiguredTarget(t *testing.T) {
	ts := setupServer(t, nil)
	resp, err := http.Get(ts.URL + "/api/status")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var entries []struct {
		Target string `json:"target"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(entries))
	}
	byTarget := map[string]string{}
	for _, e := range entries {
		byTarget[e.Target] = e.Status
	}
	if byTarget["example.com"] != "Up" {
		t.Fatalf("example.com = %q, want Up (latest wins)", byTarget["example.com"])
	}
	if byTarget["fresh.example"] != "Unknown" {
		t.Fatalf("fresh.example = %q, want Unknown", byTarget["fresh.example"])
	}
}

func TestResults_ServesRawHistory(t *testing.T) {
	ts := setupServer(t, nil)
	resp, err := http.Get(ts.URL + "/api/results")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	var records []map[string]any
	if err := json.Unmarshal(body, &records); err != nil {
		t.Fatalf("results not valid JSON: %v\n%s", err, body)
	}
	if len(records) != 2 {
		t.Fatalf("want 2 raw records, got %d", len(records))
	}
}

func TestAPIKey_GatesAPIButNotHealth(t *testing.T) {
	ts := setupServer(t, []string{"secret"})

	resp, _ := http.Get(ts.URL + "/api/status")
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/status", nil)
	req.Header.Set("X-API-Key", "secret")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET with key: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("authenticated status = %d", resp2.StatusCode)
	}

	resp3, _ := http.Get(ts.URL + "/healthz")
	resp3.Body.Close()
	if resp3.StatusCode != http.StatusOK {
		t.Fatalf("healthz must stay open, got %d", resp3.StatusCode)
	}
}

func TestAPIKey_GatesRawDataFiles(t *testing.T) {
	ts := setupServer(t, []string{"secret"})

	// the persisted history under the docs tree must not be an
	// unauthenticated detour around /api/results
	resp, _ := http.Get(ts.URL + "/data/results.json")
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated data file = %d, want 401", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/data/results.json", nil)
	req.Header.Set("X-API-Key", "secret")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET with key: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("authenticated data file = %d", resp2.StatusCode)
	}
}

func TestDataFilesOpenWithoutKeys(t *testing.T) {
	ts := setupServer(t, nil)
	resp, err := http.Get(ts.URL + "/data/results.json")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("data file = %d, want 200 when no keys configured", resp.StatusCode)
	}
}
