// Package mcpserver exposes the persona builders and the consistency engine
// as Model Context Protocol tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/daikw/streampersona/internal/builder"
	"github.com/daikw/streampersona/internal/consistency"
	"github.com/daikw/streampersona/internal/persona"
)

const Name = "streampersona"

// Server wraps an MCP server with the persona tools registered
type Server struct {
	mcp *server.MCPServer
}

func configParam() mcp.ToolOption {
	return mcp.WithString("config",
		mcp.Required(),
		mcp.Description("Persona config as a JSON document; omitted fields take their defaults"),
	)
}

// New registers every tool
func New(version string) *Server {
	s := &Server{
		mcp: server.NewMCPServer(Name, version, server.WithToolCapabilities(false)),
	}

	s.mcp.AddTool(mcp.NewTool("build_system_prompt",
		mcp.WithDescription("Build the markdown system prompt for a streamer co-host persona"),
		configParam(),
		mcp.WithBoolean("few_shots",
			mcp.Description("Embed calibration examples; defaults to true when good examples exist"),
		),
	), s.handleBuildSystemPrompt)

	s.mcp.AddTool(mcp.NewTool("build_cheatsheet",
		mcp.WithDescription("Build the one-page markdown cheatsheet for a persona"),
		configParam(),
	), s.handleBuildCheatsheet)

	s.mcp.AddTool(mcp.NewTool("build_preview_replies",
		mcp.WithDescription("Build the three deterministic sample chat replies (first-time, lull, roast)"),
		configParam(),
	), s.handleBuildPreviewReplies)

	s.mcp.AddTool(mcp.NewTool("check_consistency",
		mcp.WithDescription("List settings that work against each other, with one-click resolutions"),
		configParam(),
	), s.handleCheckConsistency)

	s.mcp.AddTool(mcp.NewTool("apply_resolution",
		mcp.WithDescription("Apply one resolution of a consistency issue and return the updated config"),
		configParam(),
		mcp.WithString("issue_id",
			mcp.Required(),
			mcp.Description("Issue identifier as returned by check_consistency"),
		),
		mcp.WithNumber("option",
			mcp.Description("Zero-based resolution index (default 0)"),
		),
	), s.handleApplyResolution)

	return s
}

// Serve speaks MCP on in/out until ctx is done or in is closed
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	log.Debug().Msg("MCP server listening on stdio")
	err := server.NewStdioServer(s.mcp).Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp server error: %w", err)
	}
	return nil
}

// configFrom parses the config argument. A non-nil result means the
// argument was unusable and should be returned as the tool result.
func configFrom(req mcp.CallToolRequest) (*persona.Config, *mcp.CallToolResult) {
	raw, err := req.RequireString("config")
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	cfg, err := persona.ParseJSON([]byte(raw))
	if err != nil {
		return nil, mcp.NewToolResultError(describeError(err))
	}
	return cfg, nil
}

func describeError(err error) string {
	var verr *persona.ValidationError
	if !errors.As(err, &verr) {
		return err.Error()
	}
	lines := make([]string, 0, len(verr.Issues)+1)
	lines = append(lines, "Persona config failed validation:")
	for _, issue := range verr.Issues {
		lines = append(lines, "- "+issue.String())
	}
	return strings.Join(lines, "\n")
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleBuildSystemPrompt(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, bad := configFrom(req)
	if bad != nil {
		return bad, nil
	}
	opts := builder.DefaultPromptOptions(cfg)
	if v, ok := req.GetArguments()["few_shots"].(bool); ok {
		opts.IncludeFewShots = v
	}
	return mcp.NewToolResultText(builder.BuildSystemPrompt(cfg, opts)), nil
}

func (s *Server) handleBuildCheatsheet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, bad := configFrom(req)
	if bad != nil {
		return bad, nil
	}
	return mcp.NewToolResultText(builder.BuildCheatsheet(cfg)), nil
}

// Preview is one scenario reply
type Preview struct {
	Scenario string `json:"scenario"`
	Reply    string `json:"reply"`
}

func (s *Server) handleBuildPreviewReplies(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, bad := configFrom(req)
	if bad != nil {
		return bad, nil
	}
	replies := builder.BuildPreviewReplies(cfg)
	previews := make([]Preview, len(replies))
	for i, reply := range replies {
		previews[i] = Preview{Scenario: builder.PreviewScenarios[i], Reply: reply}
	}
	return jsonResult(previews)
}

func (s *Server) handleCheckConsistency(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, bad := configFrom(req)
	if bad != nil {
		return bad, nil
	}
	issues := consistency.Evaluate(cfg)
	if issues == nil {
		issues = []consistency.Issue{}
	}
	return jsonResult(issues)
}

func (s *Server) handleApplyResolution(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, bad := configFrom(req)
	if bad != nil {
		return bad, nil
	}
	issueID, err := req.RequireString("issue_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fixed, err := consistency.Apply(cfg, issueID, req.GetInt("option", 0))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(fixed)
}
