package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/daikw/streampersona/internal/persona"
	"github.com/daikw/streampersona/internal/settings"
	"github.com/daikw/streampersona/internal/store"
)

func libraryManager(c *cli.Command) *persona.Manager {
	return persona.NewManager(filepath.Join(c.String("dir"), settings.DirName, settings.PersonasDirName))
}

func snapshotArg(c *cli.Command) (string, error) {
	name := c.Args().Get(0)
	if name == "" {
		return "", fmt.Errorf("persona name is required")
	}
	return name, nil
}

func handleLibraryList(ctx context.Context, c *cli.Command) error {
	names, err := libraryManager(c).ListPersonas()
	if err != nil {
		return err
	}
	out := c.Root().Writer
	if len(names) == 0 {
		fmt.Fprintln(out, "No saved personas. Save one with 'streampersona library save <name>'.")
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}

func handleLibrarySave(ctx context.Context, c *cli.Command) error {
	name, err := snapshotArg(c)
	if err != nil {
		return err
	}

	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := e.config(ctx)
	if err := libraryManager(c).SavePersona(name, cfg, c.Bool("force")); err != nil {
		return err
	}
	e.printf("Saved %s as '%s'\n", cfg.Name(), name)
	return nil
}

func handleLibraryLoad(ctx context.Context, c *cli.Command) error {
	name, err := snapshotArg(c)
	if err != nil {
		return err
	}

	cfg, err := libraryManager(c).ReadPersona(name)
	if err != nil {
		return err
	}

	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	store.SaveConfig(ctx, e.store, cfg)
	e.printf("Loaded '%s': %s\n", name, cfg.Name())
	printIssueSummary(e, cfg)
	return nil
}

func handleLibraryDelete(ctx context.Context, c *cli.Command) error {
	name, err := snapshotArg(c)
	if err != nil {
		return err
	}
	if err := libraryManager(c).DeletePersona(name); err != nil {
		return err
	}
	fmt.Fprintf(c.Root().Writer, "Deleted '%s'\n", name)
	return nil
}
