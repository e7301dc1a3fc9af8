package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/repositories"
	"github.com/desertthunder/tdx/internal/services"
	"github.com/desertthunder/tdx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	spotify    services.Service
	api        *services.APIService
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Spotify    services.Service
	API        *services.APIService
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		spotify:    opts.Spotify,
		api:        opts.API,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, searchCommand, infoCommand, historyCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// authenticatedService returns the Spotify service after fetching a token for this invocation.
func (r *Runner) authenticatedService(ctx context.Context) (services.Service, error) {
	if r.spotify == nil {
		return nil, fmt.Errorf("%w: Spotify service not initialized, run 'tdx setup' and fill in credentials", shared.ErrServiceUnavailable)
	}

	if err := r.spotify.Authenticate(ctx); err != nil {
		return nil, err
	}

	return r.spotify, nil
}

// applyConfig reloads configuration from the --config path when the file
// exists, so any command can target a non-default config and database.
func (r *Runner) applyConfig(path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config", "path", path, "error", err)
		return
	}

	r.config = config

	spotify := config.Credentials.Spotify
	if r.spotify == nil && spotify.ClientID != "" && spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyService(spotify.Map()); err == nil {
			r.spotify = svc
		}
	}
}

// recordLookup appends a history entry, logging and swallowing storage failures
// so a broken database never blocks an API command.
func (r *Runner) recordLookup(lookup *models.Lookup) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		r.logger.Warn("history disabled", "error", err)
		return
	}
	defer db.Close()

	if err := repositories.NewLookupRepository(db).Create(lookup); err != nil {
		r.logger.Warn("failed to record history entry", "error", err)
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
