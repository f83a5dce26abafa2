package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/louisbranch/spawning/internal/services/spawn/render"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// EncounterResourceURI addresses the current encounter sheet.
	EncounterResourceURI = "spawning://encounter"
	// SettingsResourceURI addresses the session settings.
	SettingsResourceURI = "spawning://settings"
)

// SettingsPayload is the readable form of the session settings.
type SettingsPayload struct {
	Language        string   `json:"language"`
	MessageLanguage string   `json:"message_language"`
	Players         int      `json:"players"`
	Expansions      []string `json:"expansions"`
	UsePreset       bool     `json:"use_preset"`
	PresetExpansion string   `json:"preset_expansion,omitempty"`
	PresetChapter   int      `json:"preset_chapter,omitempty"`
}

// EncounterResource defines the readable encounter sheet.
func EncounterResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "encounter",
		Title:       "Encounter",
		Description: "The current encounter sheet as plain text",
		MIMEType:    "text/plain",
		URI:         EncounterResourceURI,
	}
}

// SettingsResource defines the readable session settings.
func SettingsResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "settings",
		Title:       "Settings",
		Description: "Language, players and enabled expansions of the session",
		MIMEType:    "application/json",
		URI:         SettingsResourceURI,
	}
}

// EncounterResourceHandler renders the current encounter sheet.
func EncounterResourceHandler(session Session) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		var buf bytes.Buffer
		if err := render.Text(&buf, session.Sheet()); err != nil {
			return nil, fmt.Errorf("render encounter: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      resourceURI(req, EncounterResourceURI),
					MIMEType: "text/plain",
					Text:     buf.String(),
				},
			},
		}, nil
	}
}

// SettingsResourceHandler renders the session settings as JSON.
func SettingsResourceHandler(session Session) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		settings := session.Settings()
		payload := SettingsPayload{
			Language:        settings.Language.Code(),
			MessageLanguage: settings.MessageLanguage.Code(),
			Players:         int(settings.Players),
			Expansions:      []string{},
			UsePreset:       settings.UsePreset,
		}
		for _, exp := range settings.Expansions.List() {
			payload.Expansions = append(payload.Expansions, exp.String())
		}
		if settings.UsePreset {
			payload.PresetExpansion = settings.PresetExpansion.String()
			payload.PresetChapter = settings.PresetChapter
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal settings: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      resourceURI(req, SettingsResourceURI),
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

func resourceURI(req *mcp.ReadResourceRequest, fallback string) string {
	if req == nil || req.Params == nil || req.Params.URI == "" {
		return fallback
	}
	return req.Params.URI
}
