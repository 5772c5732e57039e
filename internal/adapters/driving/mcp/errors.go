// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Deskmate. It lets AI assistants query policies and customer
// records through the same services the CLI uses.
package mcp

import "errors"

// Sentinel errors for missing required ports.
var (
	ErrMissingAssistantService = errors.New("mcp: assistant service is required")
	ErrMissingRouterService    = errors.New("mcp: router service is required")
	ErrMissingPolicyAgent      = errors.New("mcp: policy agent is required")
	ErrMissingCustomerAgent    = errors.New("mcp: customer agent is required")
)

// ErrMissingDirectoryService is returned by lookup tools when the
// directory service was not wired in.
var ErrMissingDirectoryService = errors.New("mcp: directory service is not available")

// ErrMissingQueryRunner is returned by the SQL tool when no query
// runner was wired in.
var ErrMissingQueryRunner = errors.New("mcp: query runner is not available")
