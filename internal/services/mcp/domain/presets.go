package domain

import (
	"context"
	"strings"

	"github.com/louisbranch/spawning/internal/services/spawn/domain/game"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PresetEntry describes one curated encounter.
type PresetEntry struct {
	Expansion     string   `json:"expansion" jsonschema:"expansion identifier"`
	ExpansionName string   `json:"expansion_name" jsonschema:"localized expansion name"`
	Chapter       int      `json:"chapter" jsonschema:"chapter number"`
	Index         int      `json:"index" jsonschema:"position of the preset within its chapter"`
	Name          string   `json:"name" jsonschema:"localized preset name"`
	Slots         []string `json:"slots" jsonschema:"slot codes in catalog notation"`
}

// PresetsListInput represents the MCP tool input for listing presets.
type PresetsListInput struct {
	Expansion string `json:"expansion,omitempty" jsonschema:"optional expansion identifier or name to list"`
	Chapter   int    `json:"chapter,omitempty" jsonschema:"optional chapter to list; requires expansion"`
}

// PresetsListResult represents the MCP tool output for listing presets.
type PresetsListResult struct {
	Presets []PresetEntry `json:"presets" jsonschema:"matching presets, Core first"`
}

// PresetLoadInput represents the MCP tool input for loading a preset.
type PresetLoadInput struct {
	Expansion string `json:"expansion" jsonschema:"expansion identifier or name"`
	Chapter   int    `json:"chapter" jsonschema:"chapter number"`
	Index     int    `json:"index,omitempty" jsonschema:"preset position within the chapter, default 0"`
}

// PresetsListTool defines the MCP tool schema for listing presets.
func PresetsListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "presets_list",
		Description: "Lists curated encounters, optionally for one expansion or chapter",
	}
}

// PresetLoadTool defines the MCP tool schema for loading a preset.
func PresetLoadTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "preset_load",
		Description: "Replaces the selection with a curated encounter and draws its monsters",
	}
}

// PresetsListHandler returns the preset listing handler.
func PresetsListHandler(session Session) mcp.ToolHandlerFor[PresetsListInput, PresetsListResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input PresetsListInput) (*mcp.CallToolResult, PresetsListResult, error) {
		expansions := session.PresetExpansions()
		if strings.TrimSpace(input.Expansion) != "" {
			exp, err := parseExpansion(input.Expansion)
			if err != nil {
				return nil, PresetsListResult{}, err
			}
			expansions = []game.Expansion{exp}
		}

		lang := session.Settings().Language
		result := PresetsListResult{Presets: []PresetEntry{}}
		for _, exp := range expansions {
			chapters := session.Chapters(exp)
			if input.Chapter > 0 {
				chapters = []int{input.Chapter}
			}
			for _, chapter := range chapters {
				for i, setup := range session.Setups(exp, chapter) {
					codes := make([]string, 0, len(setup.Slots))
					for _, slot := range setup.Slots {
						codes = append(codes, slot.Code())
					}
					result.Presets = append(result.Presets, PresetEntry{
						Expansion:     exp.String(),
						ExpansionName: exp.Name(lang),
						Chapter:       chapter,
						Index:         i,
						Name:          setup.Name(lang),
						Slots:         codes,
					})
				}
			}
		}
		return nil, result, nil
	}
}

// PresetLoadHandler returns the preset load handler.
func PresetLoadHandler(session Session) mcp.ToolHandlerFor[PresetLoadInput, EncounterResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PresetLoadInput) (*mcp.CallToolResult, EncounterResult, error) {
		exp, err := parseExpansion(input.Expansion)
		if err != nil {
			return nil, EncounterResult{}, err
		}
		if err := session.LoadPreset(ctx, exp, input.Chapter, input.Index); err != nil {
			return nil, EncounterResult{}, localizeError(session, "load preset", err)
		}
		return encounterResult(ctx, session, false)
	}
}
