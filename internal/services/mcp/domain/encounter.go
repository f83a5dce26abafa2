package domain

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/spawning/internal/services/spawn/render"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	formatText = "text"
	formatHTML = "html"
)

// EncounterRow is one drawn monster.
type EncounterRow struct {
	Number    string `json:"number" jsonschema:"smallest player count for the row, * when always in play"`
	Color     string `json:"color,omitempty" jsonschema:"monster color"`
	Monster   string `json:"monster" jsonschema:"localized monster name"`
	Miniature string `json:"miniature,omitempty" jsonschema:"monster whose miniature is used on the table"`
	Tier      string `json:"tier,omitempty" jsonschema:"rank or special unit"`
	Preset    bool   `json:"preset" jsonschema:"whether the monster was fixed by the preset"`
	Active    bool   `json:"active" jsonschema:"whether the row is in play for the current players"`
	Line      string `json:"line" jsonschema:"row as printed on the encounter sheet"`
}

// SlotEntry is one slot of the current selection.
type SlotEntry struct {
	Index   int    `json:"index" jsonschema:"position used by slot_remove"`
	Code    string `json:"code" jsonschema:"slot code in catalog notation"`
	Monster string `json:"monster,omitempty" jsonschema:"fixed monster, if any"`
	Preset  bool   `json:"preset" jsonschema:"whether the monster was fixed by the preset"`
}

// EncounterResult represents the MCP tool output for the current encounter.
type EncounterResult struct {
	Title   string         `json:"title,omitempty" jsonschema:"preset heading, empty for custom encounters"`
	Players int            `json:"players" jsonschema:"number of players"`
	Seed    int64          `json:"seed" jsonschema:"seed the session shuffles with"`
	Failed  bool           `json:"failed" jsonschema:"whether the enabled monsters could not cover the selection"`
	Notice  string         `json:"notice,omitempty" jsonschema:"warning shown instead of rows"`
	Rows    []EncounterRow `json:"rows" jsonschema:"drawn monsters in slot order"`
	Slots   []SlotEntry    `json:"slots" jsonschema:"current selection"`
	Text    string         `json:"text" jsonschema:"encounter sheet as plain text"`
	HTML    string         `json:"html,omitempty" jsonschema:"encounter sheet as HTML when requested"`
}

// SlotAddInput represents the MCP tool input for adding a slot.
type SlotAddInput struct {
	Code    string `json:"code" jsonschema:"slot code, e.g. W1 Ro, G2 Fi, C3 or Exclude"`
	Monster string `json:"monster,omitempty" jsonschema:"optional English monster name to fix; required for Exclude"`
}

// SlotRemoveInput represents the MCP tool input for removing a slot.
type SlotRemoveInput struct {
	Index int `json:"index" jsonschema:"slot position as listed in slots"`
}

// RandomizeInput represents the MCP tool input for drawing a new encounter.
type RandomizeInput struct{}

// OutputGetInput represents the MCP tool input for reading the encounter.
type OutputGetInput struct {
	Format string `json:"format,omitempty" jsonschema:"text (default) or html"`
}

// SlotAddTool defines the MCP tool schema for adding a slot.
func SlotAddTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "slot_add",
		Description: "Adds a slot to a custom encounter and redraws it",
	}
}

// SlotRemoveTool defines the MCP tool schema for removing a slot.
func SlotRemoveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "slot_remove",
		Description: "Removes a slot from the encounter and redraws it",
	}
}

// RandomizeTool defines the MCP tool schema for drawing a new encounter.
func RandomizeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "randomize",
		Description: "Draws new monsters for the current slots",
	}
}

// OutputGetTool defines the MCP tool schema for reading the encounter.
func OutputGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "output_get",
		Description: "Returns the current encounter sheet",
	}
}

// SlotAddHandler returns the slot add handler.
func SlotAddHandler(session Session) mcp.ToolHandlerFor[SlotAddInput, EncounterResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SlotAddInput) (*mcp.CallToolResult, EncounterResult, error) {
		if strings.TrimSpace(input.Code) == "" {
			return nil, EncounterResult{}, fmt.Errorf("code is required")
		}
		if err := session.AddSlot(ctx, input.Code, input.Monster); err != nil {
			return nil, EncounterResult{}, localizeError(session, "add slot", err)
		}
		return encounterResult(ctx, session, false)
	}
}

// SlotRemoveHandler returns the slot remove handler.
func SlotRemoveHandler(session Session) mcp.ToolHandlerFor[SlotRemoveInput, EncounterResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SlotRemoveInput) (*mcp.CallToolResult, EncounterResult, error) {
		if err := session.RemoveSlot(ctx, input.Index); err != nil {
			return nil, EncounterResult{}, localizeError(session, "remove slot", err)
		}
		return encounterResult(ctx, session, false)
	}
}

// RandomizeHandler returns the randomize handler.
func RandomizeHandler(session Session) mcp.ToolHandlerFor[RandomizeInput, EncounterResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ RandomizeInput) (*mcp.CallToolResult, EncounterResult, error) {
		session.Randomize(ctx)
		return encounterResult(ctx, session, false)
	}
}

// OutputGetHandler returns the encounter read handler.
func OutputGetHandler(session Session) mcp.ToolHandlerFor[OutputGetInput, EncounterResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input OutputGetInput) (*mcp.CallToolResult, EncounterResult, error) {
		switch strings.ToLower(strings.TrimSpace(input.Format)) {
		case "", formatText:
			return encounterResult(ctx, session, false)
		case formatHTML:
			return encounterResult(ctx, session, true)
		default:
			return nil, EncounterResult{}, fmt.Errorf("format %q is not supported", input.Format)
		}
	}
}

// encounterResult renders the session's sheet. The text form doubles as the
// tool's content block so clients without structured output still see it.
func encounterResult(ctx context.Context, session Session, withHTML bool) (*mcp.CallToolResult, EncounterResult, error) {
	sheet := session.Sheet()
	result := EncounterResult{
		Title:   sheet.Title(),
		Players: int(sheet.Players),
		Seed:    sheet.Seed,
		Failed:  sheet.Failed,
		Notice:  sheet.Notice(),
		Rows:    encounterRows(sheet),
		Slots:   slotEntries(session),
	}

	var text bytes.Buffer
	if err := render.Text(&text, sheet); err != nil {
		return nil, EncounterResult{}, fmt.Errorf("render text: %w", err)
	}
	result.Text = text.String()

	if withHTML {
		var html bytes.Buffer
		if err := render.HTML(sheet).Render(ctx, &html); err != nil {
			return nil, EncounterResult{}, fmt.Errorf("render html: %w", err)
		}
		result.HTML = html.String()
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: result.Text}},
	}, result, nil
}

func encounterRows(sheet render.Sheet) []EncounterRow {
	lang := sheet.Language
	rows := make([]EncounterRow, 0, len(sheet.Rows))
	for _, r := range sheet.Rows {
		row := EncounterRow{
			Number: r.Slot.Number.String(),
			Color:  r.Slot.Color.String(),
			Tier:   r.Slot.Tier.Name(lang),
			Preset: r.Slot.Preset,
			Active: r.Active,
			Line:   r.Line(lang),
		}
		if r.Slot.Monster != nil {
			row.Monster = r.Slot.Monster.Name(lang)
		}
		if r.Miniature != nil {
			row.Miniature = r.Miniature.Name(lang)
		}
		rows = append(rows, row)
	}
	return rows
}

func slotEntries(session Session) []SlotEntry {
	slots := session.Slots()
	entries := make([]SlotEntry, 0, len(slots))
	for i, slot := range slots {
		entry := SlotEntry{Index: i, Code: slot.Code(), Preset: slot.Preset}
		if slot.Monster != nil {
			entry.Monster = slot.Monster.NameEN
		}
		entries = append(entries, entry)
	}
	return entries
}
