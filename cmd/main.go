package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

var (
	version  = "dev"
	revision = "none"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("Failed to run application")
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "streampersona",
		Usage: "Design a streamer co-host chatbot persona and generate its system prompt",
		Description: `streampersona walks you through a persona questionnaire and turns the
answers into a deterministic system prompt, a one-page cheatsheet and sample
chat replies. Conflicting settings are flagged with one-click fixes.`,
		Version: fmt.Sprintf("%s (rev: %s)", version, revision),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "Enable verbose logging",
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Working directory for settings and local state",
				Value: ".",
			},
		},
		Commands: []*cli.Command{
			{
				Name:    "init",
				Usage:   "Answer the persona questionnaire",
				Aliases: []string{"i"},
				Action:  handleInit,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "defaults",
						Usage: "Skip the questions and store the default persona",
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Ask every field instead of the quick-start subset",
					},
				},
			},
			{
				Name:   "show",
				Usage:  "Print the stored persona config",
				Action: handleShow,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yaml",
						Usage: "Print YAML instead of JSON",
					},
				},
			},
			{
				Name:      "set",
				Usage:     "Set one persona field",
				Aliases:   []string{"s"},
				ArgsUsage: "<path> <value>",
				Action:    handleSet,
			},
			{
				Name:   "fields",
				Usage:  "List every settable field with its choices",
				Action: handleFields,
			},
			{
				Name:   "check",
				Usage:  "Report settings that work against each other",
				Action: handleCheck,
			},
			{
				Name:      "fix",
				Usage:     "Apply a resolution for a consistency issue",
				ArgsUsage: "<issue-id>",
				Action:    handleFix,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "option",
						Usage: "Resolution number as listed by check (1-based)",
						Value: 1,
					},
				},
			},
			{
				Name:    "preview",
				Usage:   "Show sample replies for first-time, lull and roast scenarios",
				Aliases: []string{"p"},
				Action:  handlePreview,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "enhance",
						Usage: "Ask the completion API for livelier replies",
					},
					&cli.StringFlag{
						Name:  "token",
						Usage: "Session API token used when no server-side key is configured",
					},
					&cli.StringFlag{
						Name:  "speak",
						Usage: "Synthesize the replies into audio files in this directory",
					},
				},
			},
			{
				Name:    "generate",
				Usage:   "Build the system prompt and cheatsheet and store them",
				Aliases: []string{"g"},
				Action:  handleGenerate,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "few-shots",
						Usage: "Embed calibration examples (default: when good examples exist)",
					},
					&cli.BoolFlag{
						Name:  "enhance",
						Usage: "Polish the prompt with the completion API",
					},
					&cli.StringFlag{
						Name:  "token",
						Usage: "Session API token used when no server-side key is configured",
					},
				},
			},
			{
				Name:   "prompt",
				Usage:  "Print the system prompt",
				Action: handlePrompt,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "render",
						Usage: "Render markdown for the terminal",
					},
					&cli.BoolFlag{
						Name:  "few-shots",
						Usage: "Embed calibration examples (default: when good examples exist)",
					},
				},
			},
			{
				Name:   "cheatsheet",
				Usage:  "Print the persona cheatsheet",
				Action: handleCheatsheet,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "render",
						Usage: "Render markdown for the terminal",
					},
				},
			},
			{
				Name:   "export",
				Usage:  "Write the last generated artifacts to files",
				Action: handleExport,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output directory",
						Value:   "persona-export",
					},
					&cli.BoolFlag{
						Name:  "yaml",
						Usage: "Also write persona.yaml",
					},
				},
			},
			{
				Name:      "import",
				Usage:     "Replace the stored persona with a JSON or YAML document",
				ArgsUsage: "<file>",
				Action:    handleImport,
			},
			{
				Name:  "library",
				Usage: "Keep named persona snapshots and switch between them",
				Commands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List saved personas",
						Action: handleLibraryList,
					},
					{
						Name:      "save",
						Usage:     "Save the current persona under a name",
						ArgsUsage: "<name>",
						Action:    handleLibrarySave,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:    "force",
								Aliases: []string{"f"},
								Usage:   "Replace an existing snapshot",
							},
						},
					},
					{
						Name:      "load",
						Usage:     "Make a saved persona the current one",
						ArgsUsage: "<name>",
						Action:    handleLibraryLoad,
					},
					{
						Name:      "delete",
						Usage:     "Delete a saved persona",
						ArgsUsage: "<name>",
						Action:    handleLibraryDelete,
					},
				},
			},
			{
				Name:   "reset",
				Usage:  "Forget the stored persona and start from defaults",
				Action: handleReset,
			},
			{
				Name:   "settings",
				Usage:  "Show the effective settings",
				Action: handleSettings,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "example",
						Usage: "Print an example settings file",
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve the persona tools over MCP on stdio",
				Action: handleMCP,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) error {
			if c.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return nil
		},
	}
}
