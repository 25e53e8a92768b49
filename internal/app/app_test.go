package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

func fixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "harvard", "testdata", "object_page.json"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

// newTestApp points a fresh App at handler through a temporary config file.
func newTestApp(t *testing.T, handler http.Handler) (*App, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("API_KEY", "")

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")
	cfgPath := filepath.Join(dir, "config.toml")
	body := fmt.Sprintf("base_url = %q\napi_key = \"secret\"\ntimeout = \"5s\"\nlog_dir = %q\nlog_level = \"debug\"\n", srv.URL, logDir)
	if err := os.WriteFile(cfgPath, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	a, err := New(Options{ConfigPath: cfgPath, Version: "test"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a, logDir
}

func TestNew_WiresClientAndCoordinator(t *testing.T) {
	data := fixture(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("apikey"); got != "secret" {
			t.Errorf("apikey = %q, want secret", got)
		}
		if got := r.Header.Get("User-Agent"); got != "curator/test" {
			t.Errorf("User-Agent = %q, want curator/test", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	})
	a, logDir := newTestApp(t, handler)

	group, snap, err := a.FetchPage(context.Background(), 1)
	if err != nil {
		t.Fatalf("FetchPage returned error: %v", err)
	}
	if group.Page != 1 || len(group.Records) != 2 {
		t.Fatalf("group = page %d with %d records, want page 1 with 2", group.Page, len(group.Records))
	}
	if snap.TotalPages != 8195 {
		t.Fatalf("TotalPages = %d, want 8195", snap.TotalPages)
	}

	if err := a.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	logData, err := os.ReadFile(filepath.Join(logDir, "curator.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{"curator started", "page fetched"} {
		if !strings.Contains(string(logData), want) {
			t.Fatalf("log missing %q:\n%s", want, logData)
		}
	}
}

func TestActivate_LoadsOnlyOnce(t *testing.T) {
	data := fixture(t)
	var hits atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write(data)
	})
	a, _ := newTestApp(t, handler)

	a.Activate(context.Background())
	a.Activate(context.Background())

	if got := hits.Load(); got != 1 {
		t.Fatalf("hits = %d, want 1", got)
	}
	if a.Coordinator.Snapshot().CurrentPage != 1 {
		t.Fatalf("CurrentPage = %d, want 1", a.Coordinator.Snapshot().CurrentPage)
	}
}

func TestFetchPage_RejectsPageZero(t *testing.T) {
	a, _ := newTestApp(t, http.NotFoundHandler())
	if _, _, err := a.FetchPage(context.Background(), 0); err == nil {
		t.Fatalf("FetchPage(0) returned nil error")
	}
}

func TestFetchPage_ServerErrorPropagates(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})
	a, _ := newTestApp(t, handler)

	_, _, err := a.FetchPage(context.Background(), 2)
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("FetchPage error = %v, want a 403", err)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`refresh_policy = "sometimes"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := New(Options{ConfigPath: path})
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("New error = %v, want load config error", err)
	}
}

func TestWritePage_Formats(t *testing.T) {
	data := fixture(t)
	a, _ := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	}))
	group, snap, err := a.FetchPage(context.Background(), 1)
	if err != nil {
		t.Fatalf("FetchPage returned error: %v", err)
	}
	report := NewPageReport(group, snap)

	if report.Records[0].PrimaryImage != "https://nrs.harvard.edu/urn-3:HUAM:DDC251942_dynmc" {
		t.Fatalf("PrimaryImage = %q", report.Records[0].PrimaryImage)
	}
	if len(report.Records[0].People) != 1 || report.Records[0].People[0] != "Vincent van Gogh" {
		t.Fatalf("People = %v", report.Records[0].People)
	}

	var text bytes.Buffer
	if err := WritePage(&text, report, FormatText); err != nil {
		t.Fatalf("WritePage text: %v", err)
	}
	if !strings.Contains(text.String(), "page 1 of 8195 (2 records)") || !strings.Contains(text.String(), "Untitled") {
		t.Fatalf("text output:\n%s", text.String())
	}

	var js bytes.Buffer
	if err := WritePage(&js, report, FormatJSON); err != nil {
		t.Fatalf("WritePage json: %v", err)
	}
	var decoded PageReport
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatalf("json output does not decode: %v", err)
	}
	if decoded.TotalPages != 8195 || len(decoded.Records) != 2 {
		t.Fatalf("decoded = %+v", decoded)
	}

	var y bytes.Buffer
	if err := WritePage(&y, report, FormatYAML); err != nil {
		t.Fatalf("WritePage yaml: %v", err)
	}
	if !strings.Contains(y.String(), "total_pages: 8195") || !strings.Contains(y.String(), "title: Untitled") {
		t.Fatalf("yaml output:\n%s", y.String())
	}

	if err := WritePage(&bytes.Buffer{}, report, "xml"); err == nil {
		t.Fatalf("WritePage xml returned nil error")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"Water Lilies", 20, "Water Lilies"},
		{"Water Lilies", 6, "Water…"},
		{"Water Lilies", 1, "W"},
		{"Water Lilies", 0, "Water Lilies"},
		{"Vase", -3, "Vase"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}
