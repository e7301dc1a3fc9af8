// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// searchCommand searches Spotify for tracks by free-text query
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "search",
		Aliases: []string{"s"},
		Usage:   "Search Spotify for tracks",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Number of results to request (at most 10 are shown)",
				Value:   5,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Save results to a local CSV file",
			},
		},
		Action: r.Search,
	}
}

// infoCommand retrieves formatted metadata for a single track
func infoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "info",
		Aliases: []string{"i"},
		Usage:   "Show metadata for a track by ID",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
			&cli.StringFlag{
				Name:  "export",
				Usage: "Write the record to a file (md or txt)",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the cover art in the browser",
			},
		},
		Action: r.Info,
	}
}

// historyCommand lists past searches and lookups
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recent searches and track lookups",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of entries to show",
				Value: 20,
			},
			&cli.StringFlag{
				Name:  "kind",
				Usage: "Filter by entry kind (search or info)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.History,
	}
}

// apiCommand handles direct Spotify API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to Spotify",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Authenticated GET against the Spotify API, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// setupCommand initializes configuration and the history database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml and initialize the history database",
		Flags: []cli.Flag{
			configFlag(),
		},
		Action: r.Setup,
	}
}

// tuiCommand launches the interactive picker
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Interactive search and track inspection",
		Flags: []cli.Flag{
			configFlag(),
		},
		Action: r.TUI,
	}
}
