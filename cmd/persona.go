package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/daikw/streampersona/internal/export"
	"github.com/daikw/streampersona/internal/persona"
	"github.com/daikw/streampersona/internal/store"
)

func handleShow(ctx context.Context, c *cli.Command) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := e.config(ctx)
	var data []byte
	if c.Bool("yaml") {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to encode persona: %w", err)
	}
	_, err = e.out.Write(data)
	return err
}

func handleSet(ctx context.Context, c *cli.Command) error {
	path := c.Args().Get(0)
	if path == "" || c.Args().Len() < 2 {
		return fmt.Errorf("usage: set <path> <value> (see 'streampersona fields')")
	}
	value := strings.Join(c.Args().Slice()[1:], " ")

	field, ok := persona.LookupField(path)
	if !ok {
		return fmt.Errorf("unknown field '%s'", path)
	}

	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := e.config(ctx)
	if err := field.Set(cfg, value); err != nil {
		return err
	}
	store.SaveConfig(ctx, e.store, cfg)

	log.Debug().Str("field", path).Msg("Updated persona field")
	e.printf("%s: %s\n", field.Label, field.Get(cfg))
	printIssueSummary(e, cfg)
	return nil
}

func handleFields(ctx context.Context, c *cli.Command) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := e.config(ctx)
	for _, f := range persona.Fields() {
		current := f.Get(cfg)
		if current == "" {
			current = "(unset)"
		}
		e.printf("%-40s %-12s %s\n", f.Path, f.Kind, current)
		if len(f.Choices) > 0 {
			e.printf("%-40s %-12s one of: %s\n", "", "", strings.Join(f.Choices, " | "))
		}
	}
	return nil
}

func handleImport(ctx context.Context, c *cli.Command) error {
	path := c.Args().Get(0)
	if path == "" {
		return fmt.Errorf("file path is required")
	}

	// parse before opening the store so a bad file never touches state
	cfg, err := export.ImportFile(path)
	if err != nil {
		return err
	}

	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	store.SaveConfig(ctx, e.store, cfg)
	log.Info().Str("path", path).Msg("Imported persona")
	e.printf("Imported persona: %s\n", cfg.Name())
	printIssueSummary(e, cfg)
	return nil
}

func handleReset(ctx context.Context, c *cli.Command) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := store.ClearConfig(ctx, e.store); err != nil {
		return err
	}
	e.println("Persona reset to defaults")
	return nil
}
