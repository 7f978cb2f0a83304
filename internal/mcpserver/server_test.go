package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daikw/streampersona/internal/builder"
	"github.com/daikw/streampersona/internal/consistency"
	"github.com/daikw/streampersona/internal/persona"
)

type handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func call(t *testing.T, h handler, args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args

	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text, res.IsError
}

func configJSON(t *testing.T, cfg *persona.Config) string {
	t.Helper()
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	return string(data)
}

func TestBuildSystemPrompt(t *testing.T) {
	s := New("test")
	cfg := persona.Default()
	cfg.Calibration = &persona.Calibration{GoodExamples: []string{"gg chat"}}

	text, isErr := call(t, s.handleBuildSystemPrompt, map[string]any{"config": configJSON(t, cfg)})
	assert.False(t, isErr)
	assert.Equal(t, builder.BuildSystemPrompt(cfg, builder.PromptOptions{IncludeFewShots: true}), text)

	text, isErr = call(t, s.handleBuildSystemPrompt, map[string]any{"config": configJSON(t, cfg), "few_shots": false})
	assert.False(t, isErr)
	assert.Equal(t, builder.BuildSystemPrompt(cfg, builder.PromptOptions{}), text)
}

func TestBuildCheatsheet_PartialConfig(t *testing.T) {
	s := New("test")

	text, isErr := call(t, s.handleBuildCheatsheet, map[string]any{"config": `{"identity": {"name": "Pip"}}`})
	assert.False(t, isErr)

	cfg := persona.Default()
	cfg.Identity.Name = "Pip"
	assert.Equal(t, builder.BuildCheatsheet(cfg), text)
}

func TestBuildPreviewReplies(t *testing.T) {
	s := New("test")

	text, isErr := call(t, s.handleBuildPreviewReplies, map[string]any{"config": "{}"})
	require.False(t, isErr)

	var previews []Preview
	require.NoError(t, json.Unmarshal([]byte(text), &previews))
	require.Len(t, previews, 3)

	want := builder.BuildPreviewReplies(persona.Default())
	for i, p := range previews {
		assert.Equal(t, builder.PreviewScenarios[i], p.Scenario)
		assert.Equal(t, want[i], p.Reply)
	}
}

func TestCheckConsistency(t *testing.T) {
	s := New("test")

	text, isErr := call(t, s.handleCheckConsistency, map[string]any{"config": "{}"})
	require.False(t, isErr)
	assert.Equal(t, "[]", text)

	text, isErr = call(t, s.handleCheckConsistency, map[string]any{"config": `{"template": "Succubus", "rating": "G"}`})
	require.False(t, isErr)

	var issues []struct {
		ID          string `json:"id"`
		Severity    string `json:"severity"`
		Resolutions []struct {
			Label string `json:"label"`
		} `json:"resolutions"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &issues))
	require.Len(t, issues, 1)
	assert.Equal(t, consistency.SuccubusRating, issues[0].ID)
	assert.Equal(t, "warning", issues[0].Severity)
	require.Len(t, issues[0].Resolutions, 1)
	assert.Equal(t, "Raise rating to PG-13", issues[0].Resolutions[0].Label)
}

func TestApplyResolution(t *testing.T) {
	s := New("test")
	doc := `{"rating": "G", "flirtiness": "Playful"}`

	text, isErr := call(t, s.handleApplyResolution, map[string]any{
		"config":   doc,
		"issue_id": consistency.RatingFlirtinessMismatch,
		"option":   float64(1),
	})
	require.False(t, isErr, text)

	fixed, err := persona.ParseJSON([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, persona.RatingPG13, fixed.Rating)
	assert.Equal(t, persona.FlirtPlayful, fixed.Flirtiness)

	text, isErr = call(t, s.handleApplyResolution, map[string]any{"config": doc, "issue_id": consistency.RatingFlirtinessMismatch})
	require.False(t, isErr, text)
	fixed, err = persona.ParseJSON([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, persona.FlirtSubtle, fixed.Flirtiness)
}

func TestToolErrors(t *testing.T) {
	s := New("test")

	tests := []struct {
		name     string
		h        handler
		args     map[string]any
		contains string
	}{
		{"missing config", s.handleBuildCheatsheet, map[string]any{}, "config"},
		{"malformed config", s.handleBuildCheatsheet, map[string]any{"config": "{"}, "failed to decode persona JSON"},
		{"invalid config", s.handleBuildSystemPrompt, map[string]any{"config": `{"values": ["honest"]}`}, "- values"},
		{"missing issue", s.handleApplyResolution, map[string]any{"config": "{}"}, "issue_id"},
		{"issue not present", s.handleApplyResolution, map[string]any{"config": "{}", "issue_id": consistency.SuccubusRating}, "does not apply"},
		{"bad option", s.handleApplyResolution, map[string]any{
			"config":   `{"template": "Succubus", "rating": "G"}`,
			"issue_id": consistency.SuccubusRating,
			"option":   float64(3),
		}, "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := call(t, tt.h, tt.args)
			assert.True(t, isErr)
			assert.Contains(t, text, tt.contains)
		})
	}
}
