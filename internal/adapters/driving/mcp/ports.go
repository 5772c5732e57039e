package mcp

import (
	"github.com/custodia-labs/deskmate/internal/core/ports/driven"
	"github.com/custodia-labs/deskmate/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP
// server. This provides a single injection point for dependency
// injection.
type Ports struct {
	// Assistant answers free-form questions over combined context.
	Assistant driving.AssistantService

	// Router dispatches questions to exactly one agent.
	Router driving.RouterService

	// Policy is the policy agent, addressable directly.
	Policy driving.AgentService

	// Customer is the customer agent, addressable directly.
	Customer driving.AgentService

	// Directory provides structured lookups. Optional; the lookup
	// tools report an error when absent.
	Directory driving.DirectoryService

	// Query runs ad-hoc read-only SQL against the customer database.
	// Optional; the SQL tool reports an error when absent.
	Query driven.QueryRunner
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Assistant == nil {
		return ErrMissingAssistantService
	}
	if p.Router == nil {
		return ErrMissingRouterService
	}
	if p.Policy == nil {
		return ErrMissingPolicyAgent
	}
	if p.Customer == nil {
		return ErrMissingCustomerAgent
	}
	// Directory and Query are optional
	return nil
}
