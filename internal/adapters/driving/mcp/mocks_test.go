package mcp

import (
	"context"

	"github.com/custodia-labs/deskmate/internal/core/domain"
)

// mockAssistant is a mock implementation of driving.AssistantService.
type mockAssistant struct {
	answer *domain.Answer
	err    error
}

func (m *mockAssistant) Answer(_ context.Context, _ string) (*domain.Answer, error) {
	return m.answer, m.err
}

// mockRouter is a mock implementation of driving.RouterService.
type mockRouter struct {
	result    domain.AgentResult
	formatted string
	err       error

	routeCalls int
}

func (m *mockRouter) Route(_ context.Context, _ string) (domain.AgentResult, error) {
	m.routeCalls++
	return m.result, m.err
}

func (m *mockRouter) Process(ctx context.Context, question string) (string, error) {
	result, err := m.Route(ctx, question)
	if err != nil {
		return "", err
	}
	return m.Format(result), nil
}

func (m *mockRouter) Format(_ domain.AgentResult) string {
	return m.formatted
}

// mockAgent is a mock implementation of driving.AgentService.
type mockAgent struct {
	result domain.AgentResult
	err    error
}

func (m *mockAgent) ProcessQuery(_ context.Context, _ string) (domain.AgentResult, error) {
	return m.result, m.err
}

// mockDirectory is a mock implementation of driving.DirectoryService.
type mockDirectory struct {
	customer  *domain.CustomerRecord
	history   *domain.TicketHistory
	customers []domain.CustomerRecord
	policy    string
	err       error
}

func (m *mockDirectory) Profile(_ context.Context, _ string) (*domain.CustomerRecord, error) {
	return m.customer, m.err
}

func (m *mockDirectory) Tickets(_ context.Context, _ string) (*domain.TicketHistory, error) {
	return m.history, m.err
}

func (m *mockDirectory) SearchCustomers(_ context.Context, _ string) ([]domain.CustomerRecord, error) {
	return m.customers, m.err
}

func (m *mockDirectory) PolicyDocument(_ context.Context, _ string) (string, error) {
	return m.policy, m.err
}

// mockQueryRunner is a mock implementation of driven.QueryRunner.
type mockQueryRunner struct {
	rows      []map[string]any
	err       error
	lastQuery string
}

func (m *mockQueryRunner) RunQuery(_ context.Context, query string) ([]map[string]any, error) {
	m.lastQuery = query
	return m.rows, m.err
}

func validPorts() *Ports {
	return &Ports{
		Assistant: &mockAssistant{},
		Router:    &mockRouter{},
		Policy:    &mockAgent{},
		Customer:  &mockAgent{},
	}
}
