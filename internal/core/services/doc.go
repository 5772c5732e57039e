// Package services implements the driving port interfaces.
// Services contain the core business logic - question classification,
// entity extraction, agent routing and context aggregation - and
// orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no external dependencies beyond the ports.
package services
