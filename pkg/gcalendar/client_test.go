package gcalendar_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"study-planner/pkg/gcalendar"
)

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *gcalendar.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	tsClient := ts.Client()
	tsClient.Transport = &rewriteTransport{
		Transport: tsClient.Transport,
		Host:      strings.TrimPrefix(ts.URL, "http://"),
	}
	client, err := gcalendar.NewClientFromHTTP(context.Background(), tsClient)
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	return client
}

func TestCalendarClient_Credentials(t *testing.T) {
	mockCreds := `{
		"installed": {
			"client_id": "test-client-id.apps.googleusercontent.com",
			"project_id": "test-project",
			"auth_uri": "https://accounts.google.com/o/oauth2/auth",
			"token_uri": "https://oauth2.googleapis.com/token",
			"client_secret": "test-secret",
			"redirect_uris": ["http://localhost"]
		}
	}`

	t.Run("broken config", func(t *testing.T) {
		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(`{"broken":true}`), "")
		if err == nil {
			t.Errorf("expected decoding failure")
		}
	})

	t.Run("installed app config", func(t *testing.T) {
		tokenPath := filepath.Join(t.TempDir(), "token.json")
		os.WriteFile(tokenPath, []byte(`{"access_token": "dummy", "token_type": "Bearer", "expiry": "2030-01-01T00:00:00Z"}`), 0o600)

		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(mockCreds), tokenPath)
		if err != nil {
			t.Fatalf("expected parsing to succeed: %v", err)
		}
	})

	t.Run("installed app config bad token", func(t *testing.T) {
		tokenPath := filepath.Join(t.TempDir(), "token.json")
		os.WriteFile(tokenPath, []byte(`{"broken": true`), 0o600)

		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(mockCreds), tokenPath)
		if err == nil {
			t.Fatalf("expected parsing to fail on bad token")
		}
	})

	t.Run("installed app config missing token", func(t *testing.T) {
		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(mockCreds), filepath.Join(t.TempDir(), "none.json"))
		if err == nil {
			t.Fatalf("expected missing token error")
		}
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "creds.json")
		os.WriteFile(path, []byte(`{"broken":true}`), 0o600)

		if _, err := gcalendar.NewClientFromCredentialsFile(context.Background(), path, ""); err == nil {
			t.Errorf("expected failure loading broken file")
		}
		if _, err := gcalendar.NewClientFromCredentialsFile(context.Background(), "non-existent-file-path-12345.json", ""); err == nil {
			t.Errorf("expected reading file error")
		}
	})
}

func TestCalendarClient_FreeBusy(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calendar/v3/freeBusy" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"calendars": {
				"primary": {
					"busy": [
						{"start": "2025-03-03T14:00:00Z", "end": "2025-03-03T15:00:00Z"},
						{"start": "2025-03-03T09:00:00Z", "end": "2025-03-03T10:00:00Z"}
					]
				},
				"classes": {
					"busy": [
						{"start": "2025-03-03T11:00:00Z", "end": "2025-03-03T12:30:00Z"}
					]
				}
			}
		}`))
	})

	from := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	busy, err := client.FreeBusy(context.Background(), gcalendar.FreeBusyRequest{
		CalendarIDs: []string{"primary", "classes"},
		TimeMin:     from,
		TimeMax:     from.Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("FreeBusy() error = %v", err)
	}
	if len(busy) != 3 {
		t.Fatalf("len(busy) = %d, want 3", len(busy))
	}
	if busy[0].Start.Hour() != 9 || busy[1].CalendarID != "classes" || busy[2].Start.Hour() != 14 {
		t.Errorf("busy not sorted by start: %+v", busy)
	}
	items, _ := gotBody["items"].([]any)
	if len(items) != 2 {
		t.Errorf("request items = %v, want 2 calendars", gotBody["items"])
	}
}

func TestCalendarClient_FreeBusyErrors(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		_, err := client.FreeBusy(context.Background(), gcalendar.FreeBusyRequest{
			TimeMin: time.Now(),
			TimeMax: time.Now().Add(time.Hour),
		})
		if err == nil {
			t.Fatal("expected api error")
		}
	})

	t.Run("calendar error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"calendars": {"primary": {"errors": [{"domain": "global", "reason": "notFound"}]}}}`))
		})
		_, err := client.FreeBusy(context.Background(), gcalendar.FreeBusyRequest{
			TimeMin: time.Now(),
			TimeMax: time.Now().Add(time.Hour),
		})
		if err == nil || !strings.Contains(err.Error(), "notFound") {
			t.Fatalf("err = %v, want notFound", err)
		}
	})
}
