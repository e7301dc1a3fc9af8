package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/services"
	"github.com/desertthunder/tdx/internal/shared"
	tu "github.com/desertthunder/tdx/internal/testing"
	"github.com/urfave/cli/v3"
)

// newTestRunner wires a Runner with a mock service, buffered output, and a
// throwaway database path so history writes land in a temp dir.
func newTestRunner(t *testing.T, mock *tu.MockService) (*Runner, *bytes.Buffer) {
	t.Helper()

	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(t.TempDir(), "tdx.db")

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config:  config,
		Spotify: mock,
		API:     services.NewAPIService("", nil),
		Logger:  shared.NewLogger(&bytes.Buffer{}),
		Output:  output,
	})

	return runner, output
}

// runCommand executes a CLI invocation against the runner's registered commands.
func runCommand(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{Name: "tdx", Commands: runner.register()}
	return app.Run(context.Background(), append([]string{"tdx"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			spotify := &tu.MockService{}
			api := services.NewAPIService("", nil)

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Spotify:    spotify,
				API:        api,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.spotify != spotify {
				t.Error("expected spotify to be set")
			}
			if runner.api != api {
				t.Error("expected api to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockService{})
		commands := runner.register()

		if len(commands) != 6 {
			t.Errorf("expected 6 commands, got %d", len(commands))
		}

		names := map[string]bool{}
		for _, cmd := range commands {
			names[cmd.Name] = true
		}
		for _, want := range []string{"setup", "search", "info", "history", "api", "tui"} {
			if !names[want] {
				t.Errorf("expected %s command to be registered", want)
			}
		}
	})

	t.Run("authenticatedService", func(t *testing.T) {
		t.Run("nil service", func(t *testing.T) {
			runner, _ := newTestRunner(t, nil)
			runner.spotify = nil

			if _, err := runner.authenticatedService(context.Background()); !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})

		t.Run("authentication failure propagates", func(t *testing.T) {
			runner, _ := newTestRunner(t, &tu.MockService{Err: shared.ErrAuthFailed})

			if _, err := runner.authenticatedService(context.Background()); !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
		})
	})

	t.Run("write helpers", func(t *testing.T) {
		t.Run("writeJSON compact", func(t *testing.T) {
			runner, output := newTestRunner(t, &tu.MockService{})

			if err := runner.writeJSON(map[string]string{"a": "b"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "{\"a\":\"b\"}\n" {
				t.Errorf("unexpected output: %q", output.String())
			}
		})

		t.Run("writeJSON failed writer", func(t *testing.T) {
			runner, _ := newTestRunner(t, &tu.MockService{})
			runner.output = &tu.FWriter{}

			if err := runner.writeJSON(map[string]string{"a": "b"}, false); err == nil {
				t.Error("expected write error")
			}
		})

		t.Run("writePlain failed writer", func(t *testing.T) {
			runner, _ := newTestRunner(t, &tu.MockService{})
			runner.output = &tu.FWriter{}

			if err := runner.writePlain("hello"); err == nil {
				t.Error("expected write error")
			}
		})
	})
}

func TestSearchCommand(t *testing.T) {
	results := []models.TrackSummary{
		{Position: 1, Name: "Song One", Artist: "Artist One", Album: "Album One", ID: "track1"},
		{Position: 2, Name: "Song Two", Artist: "Artist Two", Album: "Album Two", ID: "track2"},
	}

	t.Run("Plain Output", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockService{Results: results})

		if err := runCommand(t, runner, "search", "song"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		got := output.String()
		if !strings.Contains(got, "1. Artist One - Song One (Album One)") {
			t.Errorf("missing first row, got: %s", got)
		}
		if !strings.Contains(got, "2. Artist Two - Song Two (Album Two)") {
			t.Errorf("missing second row, got: %s", got)
		}
	})

	t.Run("JSON Output", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockService{Results: results})

		if err := runCommand(t, runner, "search", "song", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), `"id":"track1"`) {
			t.Errorf("expected JSON rows, got: %s", output.String())
		}
	})

	t.Run("No Matches", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockService{Results: []models.TrackSummary{}})

		if err := runCommand(t, runner, "search", "nothing"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), "No matches") {
			t.Errorf("expected empty-result message, got: %s", output.String())
		}
	})

	t.Run("Missing Query", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockService{Results: results})

		if err := runCommand(t, runner, "search"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("Service Error", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockService{Err: shared.ErrAPIRequest})

		if err := runCommand(t, runner, "search", "song"); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

func TestInfoCommand(t *testing.T) {
	info := &models.TrackInfo{
		AlbumID:  "album1",
		Name:     "Song One",
		Artist:   "Artist One",
		Year:     "2021-05-10",
		Duration: "03:05",
		Image:    "https://img.example/cover.jpg",
		Label:    "May 10, 2021\nTest Label",
		TrackID:  "track1",
		Cover:    "./assets/spotify_banner.jpg",
	}

	t.Run("Plain Output", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockService{Info: info})

		if err := runCommand(t, runner, "info", "track1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		got := output.String()
		for _, want := range []string{"Track: Song One", "Duration: 03:05", "Label: May 10, 2021"} {
			if !strings.Contains(got, want) {
				t.Errorf("missing %q in output: %s", want, got)
			}
		}
	})

	t.Run("JSON Output", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockService{Info: info})

		if err := runCommand(t, runner, "info", "track1", "--json", "--pretty"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), `"track_id": "track1"`) {
			t.Errorf("expected pretty JSON, got: %s", output.String())
		}
	})

	t.Run("Missing ID", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockService{Info: info})

		if err := runCommand(t, runner, "info"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("Export Markdown", func(t *testing.T) {
		noCover := *info
		noCover.Image = ""
		runner, _ := newTestRunner(t, &tu.MockService{Info: &noCover})

		wd := tu.MustGetwd(t)
		tu.MustChdir(t, t.TempDir())
		defer tu.MustChdir(t, wd)

		if err := runCommand(t, runner, "info", "track1", "--export", "md"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, "tdx_track.md")
		content := tu.MustReadFile(t, "tdx_track.md")
		if !strings.Contains(content, "# Song One") {
			t.Errorf("expected markdown export, got: %s", content)
		}
		if strings.Contains(content, "![Cover]") {
			t.Errorf("expected no cover reference without an image URL, got: %s", content)
		}
	})

	t.Run("Export Markdown Downloads Cover", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("image-bytes"))
		}))
		defer server.Close()

		covered := *info
		covered.Image = server.URL + "/cover.jpg"
		runner, _ := newTestRunner(t, &tu.MockService{Info: &covered})

		wd := tu.MustGetwd(t)
		tu.MustChdir(t, t.TempDir())
		defer tu.MustChdir(t, wd)

		if err := runCommand(t, runner, "info", "track1", "--export", "md"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, "tdx_cover.jpg")
		content := tu.MustReadFile(t, "tdx_track.md")
		if !strings.Contains(content, "![Cover](tdx_cover.jpg)") {
			t.Errorf("expected markdown to reference the downloaded cover, got: %s", content)
		}
	})

	t.Run("Unsupported Export Format", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockService{Info: info})

		if err := runCommand(t, runner, "info", "track1", "--export", "xml"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("Lookup Error", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockService{Err: shared.ErrTrackNotFound})

		if err := runCommand(t, runner, "info", "missing"); !errors.Is(err, shared.ErrTrackNotFound) {
			t.Errorf("expected ErrTrackNotFound, got %v", err)
		}
	})
}

func TestHistoryCommand(t *testing.T) {
	t.Run("Invalid Kind", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockService{})

		if err := runCommand(t, runner, "history", "--kind", "bogus"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("Records Then Lists", func(t *testing.T) {
		results := []models.TrackSummary{
			{Position: 1, Name: "Song One", Artist: "Artist One", Album: "Album One", ID: "track1"},
		}
		runner, output := newTestRunner(t, &tu.MockService{Results: results})

		// initialize the schema the setup command would have created
		db, err := shared.NewDatabase(runner.config.Database.Path)
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		if err := shared.RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
		db.Close()

		if err := runCommand(t, runner, "search", "song one"); err != nil {
			t.Fatalf("search failed: %v", err)
		}

		output.Reset()
		if err := runCommand(t, runner, "history"); err != nil {
			t.Fatalf("history failed: %v", err)
		}

		if !strings.Contains(output.String(), `"song one" (1 results)`) {
			t.Errorf("expected recorded search in history, got: %s", output.String())
		}
	})

	t.Run("Honors Config Flag", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockService{})

		dir := t.TempDir()
		dbPath := filepath.Join(dir, "alt.db")
		db, err := shared.NewDatabase(dbPath)
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		if err := shared.RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
		db.Close()

		configPath := filepath.Join(dir, "alt.toml")
		config := shared.DefaultConfig()
		config.Database.Path = dbPath
		if err := shared.SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		if err := runCommand(t, runner, "history", "--config", configPath); err != nil {
			t.Fatalf("history failed: %v", err)
		}

		if runner.config.Database.Path != dbPath {
			t.Errorf("expected database path %s, got %s", dbPath, runner.config.Database.Path)
		}
		if !strings.Contains(output.String(), "No history yet") {
			t.Errorf("expected empty-history message, got: %s", output.String())
		}
	})

	t.Run("Empty History", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockService{})

		db, err := shared.NewDatabase(runner.config.Database.Path)
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		if err := shared.RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
		db.Close()

		if err := runCommand(t, runner, "history"); err != nil {
			t.Fatalf("history failed: %v", err)
		}

		if !strings.Contains(output.String(), "No history yet") {
			t.Errorf("expected empty-history message, got: %s", output.String())
		}
	})
}

func TestSetupCommand(t *testing.T) {
	runner, output := newTestRunner(t, &tu.MockService{})

	wd := tu.MustGetwd(t)
	dir := t.TempDir()
	tu.MustChdir(t, dir)
	defer tu.MustChdir(t, wd)

	configPath := filepath.Join(dir, "config.toml")
	if err := runCommand(t, runner, "setup", "--config", configPath); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	tu.AssertFileExists(t, configPath)
	if !strings.Contains(output.String(), "Setup complete") {
		t.Errorf("expected completion message, got: %s", output.String())
	}

	// the created config points at tdx.db in the working directory
	tu.AssertFileExists(t, "tdx.db")
}
