// Package service wires the MCP protocol to a randomizer session.
//
// It is the transport adapter layer: the package registers tools and
// resources and runs them over a transport, delegating behavior to the
// domain handlers.
package service
