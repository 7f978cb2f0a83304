package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/daikw/streampersona/internal/mcpserver"
)

func handleMCP(ctx context.Context, c *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Msg("MCP server ready, listening on stdin/stdout")
	return mcpserver.New(version).Serve(ctx, c.Root().Reader, c.Root().Writer)
}
