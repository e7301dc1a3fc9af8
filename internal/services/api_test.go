package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPIService(t *testing.T) {
	t.Run("NewAPIService", func(t *testing.T) {
		t.Run("Defaults", func(t *testing.T) {
			api := NewAPIService("", nil)
			if api.baseURL != spotifyBaseURL {
				t.Errorf("expected default base URL, got %s", api.baseURL)
			}
			if api.httpClient != http.DefaultClient {
				t.Error("expected default http client")
			}
		})

		t.Run("Custom Base URL", func(t *testing.T) {
			api := NewAPIService("http://localhost:9999", nil)
			if api.baseURL != "http://localhost:9999" {
				t.Errorf("expected custom base URL, got %s", api.baseURL)
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer tok" {
					t.Errorf("expected bearer header, got %q", got)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"id": "track1"}`))
			}))
			defer server.Close()

			api := NewAPIService(server.URL, nil)
			api.SetBearer("tok")

			resp, err := api.Get(context.Background(), "/tracks/track1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if resp.StatusCode != http.StatusOK {
				t.Errorf("expected 200, got %d", resp.StatusCode)
			}
			if !resp.IsJSON {
				t.Error("expected JSON response to be detected")
			}
		})

		t.Run("Non-JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("plain text"))
			}))
			defer server.Close()

			api := NewAPIService(server.URL, nil)

			resp, err := api.Get(context.Background(), "/whatever")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.IsJSON {
				t.Error("expected non-JSON response")
			}
			if string(resp.Body) != "plain text" {
				t.Errorf("expected raw body, got %q", resp.Body)
			}
		})

		t.Run("No Bearer Set", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "" {
					t.Errorf("expected no auth header, got %q", got)
				}
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			api := NewAPIService(server.URL, nil)

			if _, err := api.Get(context.Background(), "/"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	})
}
