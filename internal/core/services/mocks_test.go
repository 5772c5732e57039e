package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/deskmate/internal/core/domain"
)

type mockRecordStore struct {
	customers  []domain.CustomerRecord
	tickets    map[int64][]domain.SupportTicket
	findErr    error
	ticketsErr error
	searchErr  error
}

func (m *mockRecordStore) FindCustomer(_ context.Context, nameSubstring string) (*domain.CustomerRecord, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	lower := strings.ToLower(nameSubstring)
	for i := range m.customers {
		if strings.Contains(strings.ToLower(m.customers[i].Name), lower) {
			return &m.customers[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRecordStore) FindTickets(_ context.Context, customerID int64) ([]domain.SupportTicket, error) {
	if m.ticketsErr != nil {
		return nil, m.ticketsErr
	}
	return m.tickets[customerID], nil
}

func (m *mockRecordStore) SearchCustomers(_ context.Context, substring string) ([]domain.CustomerRecord, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if substring == "" {
		return m.customers, nil
	}
	lower := strings.ToLower(substring)
	var out []domain.CustomerRecord
	for _, c := range m.customers {
		if strings.Contains(strings.ToLower(c.Name), lower) ||
			strings.Contains(strings.ToLower(c.Email), lower) {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockPolicyStore struct {
	texts  map[string]string
	getErr error
}

func (m *mockPolicyStore) GetFullText(_ context.Context, policyID string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	text, ok := m.texts[policyID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return text, nil
}

func (m *mockPolicyStore) SavePolicy(_ context.Context, policy *domain.PolicyDocument) error {
	if m.texts == nil {
		m.texts = map[string]string{}
	}
	m.texts[policy.ID] = policy.Content
	return nil
}

func (m *mockPolicyStore) ListPolicies(_ context.Context) ([]domain.PolicyDocument, error) {
	var out []domain.PolicyDocument
	for id, text := range m.texts {
		out = append(out, domain.PolicyDocument{ID: id, Content: text})
	}
	return out, nil
}

type mockSearcher struct {
	chunks    []domain.RetrievedChunk
	err       error
	lastQuery string
	lastTopK  int
}

func (m *mockSearcher) Search(_ context.Context, _, query string, topK int) ([]domain.RetrievedChunk, error) {
	m.lastQuery = query
	m.lastTopK = topK
	if m.err != nil {
		return nil, m.err
	}
	return m.chunks, nil
}

type mockGenerator struct {
	response   string
	err        error
	calls      int
	lastSystem string
	lastUser   string
}

func (m *mockGenerator) Generate(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	m.calls++
	m.lastSystem = systemPrompt
	m.lastUser = userPrompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockGenerator) ModelName() string            { return "mock-model" }
func (m *mockGenerator) Ping(_ context.Context) error { return nil }
func (m *mockGenerator) Close() error                 { return nil }

type mockIndexer struct {
	indexed []domain.Chunk
	err     error
}

func (m *mockIndexer) Index(_ context.Context, _ string, chunks []domain.Chunk) error {
	if m.err != nil {
		return m.err
	}
	m.indexed = append(m.indexed, chunks...)
	return nil
}
