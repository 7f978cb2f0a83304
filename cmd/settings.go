package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/daikw/streampersona/internal/settings"
)

func handleSettings(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer
	if c.Bool("example") {
		fmt.Fprintln(out, settings.ExampleJSON())
		return nil
	}

	s, err := settings.NewLoader().Load(c.String("dir"))
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.MaskSecrets(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	fmt.Fprintln(out, string(data))

	for _, problem := range s.Validate() {
		fmt.Fprintf(out, "%s %s\n", warnLabel("!"), problem)
	}
	return nil
}
