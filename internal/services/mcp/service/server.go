package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/spawning/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies the MCP server to clients.
	serverName = "spawning"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

type mcpRegistrationKind int

const (
	mcpRegistrationKindTools mcpRegistrationKind = iota
	mcpRegistrationKindResources
)

type mcpRegistrationModule struct {
	name     string
	kind     mcpRegistrationKind
	register func(mcpRegistrationTarget) error
}

const (
	mcpCatalogToolsModuleName    = "catalog-tools"
	mcpEncounterToolsModuleName  = "encounter-tools"
	mcpSessionResourceModuleName = "session-resources"
)

type mcpServerRegistrationAdapter struct {
	server *mcp.Server
}

func (r mcpServerRegistrationAdapter) AddTool(tool *mcp.Tool, handler any) error {
	return addMCPTool(r.server, tool, handler)
}

func (r mcpServerRegistrationAdapter) AddResource(resource *mcp.Resource, handler mcp.ResourceHandler) {
	r.server.AddResource(resource, handler)
}

type mcpToolRegistrar struct {
	matches func(any) bool
	add     func(*mcp.Server, *mcp.Tool, any)
}

func newMCPToolRegistrar[I any, O any]() mcpToolRegistrar {
	return mcpToolRegistrar{
		matches: func(handler any) bool {
			_, ok := handler.(mcp.ToolHandlerFor[I, O])
			return ok
		},
		add: func(server *mcp.Server, tool *mcp.Tool, handler any) {
			mcp.AddTool(server, tool, handler.(mcp.ToolHandlerFor[I, O]))
		},
	}
}

var mcpToolRegistrars = []mcpToolRegistrar{
	newMCPToolRegistrar[domain.ExpansionsListInput, domain.ExpansionsResult](),
	newMCPToolRegistrar[domain.ExpansionToggleInput, domain.ExpansionsResult](),
	newMCPToolRegistrar[domain.PresetsListInput, domain.PresetsListResult](),
	newMCPToolRegistrar[domain.PresetLoadInput, domain.EncounterResult](),
	newMCPToolRegistrar[domain.SlotAddInput, domain.EncounterResult](),
	newMCPToolRegistrar[domain.SlotRemoveInput, domain.EncounterResult](),
	newMCPToolRegistrar[domain.RandomizeInput, domain.EncounterResult](),
	newMCPToolRegistrar[domain.OutputGetInput, domain.EncounterResult](),
	newMCPToolRegistrar[domain.MonstersListInput, domain.MonstersListResult](),
}

func addMCPTool(server *mcp.Server, tool *mcp.Tool, handler any) error {
	for _, registrar := range mcpToolRegistrars {
		if registrar.matches(handler) {
			registrar.add(server, tool, handler)
			return nil
		}
	}
	toolName := "<nil>"
	if tool != nil {
		toolName = tool.Name
	}
	return fmt.Errorf("mcp registration adapter does not support handler type %T for tool %q", handler, toolName)
}

func newMCPRegistrationModules(session domain.Session) []mcpRegistrationModule {
	return []mcpRegistrationModule{
		{
			name: mcpCatalogToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(target mcpRegistrationTarget) error {
				return registerCatalogTools(target, session)
			},
		},
		{
			name: mcpEncounterToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(target mcpRegistrationTarget) error {
				return registerEncounterTools(target, session)
			},
		},
		{
			name: mcpSessionResourceModuleName,
			kind: mcpRegistrationKindResources,
			register: func(target mcpRegistrationTarget) error {
				registerSessionResources(target, session)
				return nil
			},
		},
	}
}

// Server hosts the MCP server bound to one randomizer session.
type Server struct {
	mcpServer *mcp.Server
}

// New builds an MCP server exposing session's tools and resources.
func New(session domain.Session) (*Server, error) {
	if session == nil {
		return nil, fmt.Errorf("session is required")
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	target := mcpServerRegistrationAdapter{server: mcpServer}
	for _, module := range newMCPRegistrationModules(session) {
		if err := module.register(target); err != nil {
			return nil, fmt.Errorf("register %s: %w", module.name, err)
		}
	}
	return &Server{mcpServer: mcpServer}, nil
}

// Serve runs the server over transport until the client disconnects or ctx
// is canceled.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// Run serves session over stdio and blocks until ctx is canceled or the
// client disconnects.
func Run(ctx context.Context, session domain.Session) error {
	return runWithTransport(ctx, session, &mcp.StdioTransport{})
}

func runWithTransport(ctx context.Context, session domain.Session, transport mcp.Transport) error {
	server, err := New(session)
	if err != nil {
		return err
	}
	return server.Serve(ctx, transport)
}
