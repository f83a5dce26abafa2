// Package domain translates MCP tool calls into randomizer session commands.
//
// Each tool has a constructor returning its *mcp.Tool definition and a
// handler constructor bound to a Session. Outputs are plain structs so MCP
// clients receive structured content alongside the rendered encounter text.
package domain
