package domain

import (
	"context"

	"github.com/louisbranch/spawning/internal/services/spawn/domain/game"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ExpansionEntry describes one expansion and whether its monsters are drawn.
type ExpansionEntry struct {
	ID      string `json:"id" jsonschema:"catalog identifier, e.g. Core or SpoilsOfWar"`
	Name    string `json:"name" jsonschema:"localized expansion name"`
	Enabled bool   `json:"enabled" jsonschema:"whether monsters of this expansion can be drawn"`
}

// ExpansionsListInput represents the MCP tool input for listing expansions.
type ExpansionsListInput struct{}

// ExpansionsResult represents the MCP tool output listing every expansion.
type ExpansionsResult struct {
	Expansions []ExpansionEntry `json:"expansions" jsonschema:"every expansion in catalog order"`
}

// ExpansionToggleInput represents the MCP tool input for toggling an expansion.
type ExpansionToggleInput struct {
	Expansion string `json:"expansion" jsonschema:"expansion identifier or localized name"`
}

// ExpansionsListTool defines the MCP tool schema for listing expansions.
func ExpansionsListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "expansions_list",
		Description: "Lists every expansion and whether it is enabled",
	}
}

// ExpansionToggleTool defines the MCP tool schema for toggling an expansion.
func ExpansionToggleTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "expansion_toggle",
		Description: "Enables or disables an expansion and redraws the encounter",
	}
}

// ExpansionsListHandler returns the expansion listing handler.
func ExpansionsListHandler(session Session) mcp.ToolHandlerFor[ExpansionsListInput, ExpansionsResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ExpansionsListInput) (*mcp.CallToolResult, ExpansionsResult, error) {
		return nil, expansionsResult(session), nil
	}
}

// ExpansionToggleHandler returns the expansion toggle handler.
func ExpansionToggleHandler(session Session) mcp.ToolHandlerFor[ExpansionToggleInput, ExpansionsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ExpansionToggleInput) (*mcp.CallToolResult, ExpansionsResult, error) {
		exp, err := parseExpansion(input.Expansion)
		if err != nil {
			return nil, ExpansionsResult{}, err
		}
		if err := session.ToggleExpansion(ctx, exp); err != nil {
			return nil, ExpansionsResult{}, localizeError(session, "toggle expansion", err)
		}
		return nil, expansionsResult(session), nil
	}
}

func expansionsResult(session Session) ExpansionsResult {
	settings := session.Settings()
	out := ExpansionsResult{Expansions: make([]ExpansionEntry, 0, len(game.Expansions()))}
	for _, exp := range game.Expansions() {
		out.Expansions = append(out.Expansions, ExpansionEntry{
			ID:      exp.String(),
			Name:    exp.Name(settings.Language),
			Enabled: settings.Expansions.Has(exp),
		})
	}
	return out
}
