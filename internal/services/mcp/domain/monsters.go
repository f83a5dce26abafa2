package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MonsterEntry describes one catalog monster.
type MonsterEntry struct {
	Name          string `json:"name" jsonschema:"English name"`
	NameDE        string `json:"name_de,omitempty" jsonschema:"German name"`
	Expansion     string `json:"expansion" jsonschema:"expansion identifier"`
	Color         string `json:"color" jsonschema:"monster color"`
	RepresentedBy string `json:"represented_by,omitempty" jsonschema:"monster whose miniature is used on the table"`
	Enabled       bool   `json:"enabled" jsonschema:"whether the monster's expansion is enabled"`
}

// MonstersListInput represents the MCP tool input for listing monsters.
type MonstersListInput struct {
	Filter      string `json:"filter,omitempty" jsonschema:"optional AIP-160 filter over name, name_de, expansion, color and represented, e.g. color = \"Gray\" AND NOT represented"`
	EnabledOnly bool   `json:"enabled_only,omitempty" jsonschema:"only list monsters of enabled expansions"`
}

// MonstersListResult represents the MCP tool output for listing monsters.
type MonstersListResult struct {
	Monsters []MonsterEntry `json:"monsters" jsonschema:"matching monsters in catalog order"`
}

// MonstersListTool defines the MCP tool schema for listing monsters.
func MonstersListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "monsters_list",
		Description: "Lists catalog monsters, optionally narrowed by an AIP-160 filter",
	}
}

// MonstersListHandler returns the monster listing handler.
func MonstersListHandler(session Session) mcp.ToolHandlerFor[MonstersListInput, MonstersListResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input MonstersListInput) (*mcp.CallToolResult, MonstersListResult, error) {
		monsters, err := session.FilterMonsters(input.Filter)
		if err != nil {
			return nil, MonstersListResult{}, err
		}
		enabled := session.Settings().Expansions
		result := MonstersListResult{Monsters: make([]MonsterEntry, 0, len(monsters))}
		for _, m := range monsters {
			on := enabled.Has(m.Expansion)
			if input.EnabledOnly && !on {
				continue
			}
			result.Monsters = append(result.Monsters, MonsterEntry{
				Name:          m.NameEN,
				NameDE:        m.NameDE,
				Expansion:     m.Expansion.String(),
				Color:         m.Color.String(),
				RepresentedBy: m.RepresentedBy,
				Enabled:       on,
			})
		}
		return nil, result, nil
	}
}
