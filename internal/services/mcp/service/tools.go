package service

import (
	"fmt"

	"github.com/louisbranch/spawning/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mcpRegistrationTarget interface {
	AddTool(*mcp.Tool, any) error
	AddResource(*mcp.Resource, mcp.ResourceHandler)
}

// registerCatalogTools registers the read-only catalog tools.
func registerCatalogTools(registrar mcpRegistrationTarget, session domain.Session) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.ExpansionsListTool(), handler: domain.ExpansionsListHandler(session)},
		{tool: domain.PresetsListTool(), handler: domain.PresetsListHandler(session)},
		{tool: domain.MonstersListTool(), handler: domain.MonstersListHandler(session)},
	}
	for _, registration := range registrations {
		if err := registerTool(registrar, registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}

// registerEncounterTools registers the tools that change the selection.
func registerEncounterTools(registrar mcpRegistrationTarget, session domain.Session) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.PresetLoadTool(), handler: domain.PresetLoadHandler(session)},
		{tool: domain.SlotAddTool(), handler: domain.SlotAddHandler(session)},
		{tool: domain.SlotRemoveTool(), handler: domain.SlotRemoveHandler(session)},
		{tool: domain.RandomizeTool(), handler: domain.RandomizeHandler(session)},
		{tool: domain.ExpansionToggleTool(), handler: domain.ExpansionToggleHandler(session)},
		{tool: domain.OutputGetTool(), handler: domain.OutputGetHandler(session)},
	}
	for _, registration := range registrations {
		if err := registerTool(registrar, registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}

// registerSessionResources registers the readable session resources.
func registerSessionResources(registrar mcpRegistrationTarget, session domain.Session) {
	registrar.AddResource(domain.EncounterResource(), domain.EncounterResourceHandler(session))
	registrar.AddResource(domain.SettingsResource(), domain.SettingsResourceHandler(session))
}

func registerTool(registrar mcpRegistrationTarget, tool *mcp.Tool, handler any) error {
	if tool == nil {
		return fmt.Errorf("tool is nil")
	}
	return registrar.AddTool(tool, handler)
}
