package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/deskmate/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/deskmate/internal/core/domain"
	"github.com/custodia-labs/deskmate/internal/core/ports/driven"
	"github.com/custodia-labs/deskmate/internal/core/services"
)

// stubSearcher serves canned chunks and records indexed ones.
type stubSearcher struct {
	hits    []domain.RetrievedChunk
	indexed []domain.Chunk
}

var _ driven.DocumentSearcher = (*stubSearcher)(nil)
var _ driven.DocumentIndexer = (*stubSearcher)(nil)

func (s *stubSearcher) Search(_ context.Context, _, _ string, topK int) ([]domain.RetrievedChunk, error) {
	if topK < len(s.hits) {
		return s.hits[:topK], nil
	}
	return s.hits, nil
}

func (s *stubSearcher) Index(_ context.Context, _ string, chunks []domain.Chunk) error {
	s.indexed = append(s.indexed, chunks...)
	return nil
}

// stubGenerator returns a fixed answer.
type stubGenerator struct {
	answer string
}

var _ driven.TextGenerator = (*stubGenerator)(nil)

func (g *stubGenerator) Generate(_ context.Context, _, _ string) (string, error) {
	return g.answer, nil
}

func (g *stubGenerator) ModelName() string { return "stub-model" }

func (g *stubGenerator) Ping(_ context.Context) error { return nil }

func (g *stubGenerator) Close() error { return nil }

// setupTestServices swaps the package-level services for ones backed by
// in-memory stores with a small fixed dataset. The returned cleanup
// restores the originals.
func setupTestServices() func() {
	oldAssistant := assistantService
	oldRouter := routerService
	oldPolicy := policyAgent
	oldCustomer := customerAgent
	oldDirectory := directoryService
	oldIngest := ingestService

	records := memory.NewRecordStore()
	records.AddCustomer(domain.CustomerRecord{
		ID:            1,
		Name:          "Sarah Chen",
		Email:         "sarah.chen@email.com",
		Phone:         "+1-555-0103",
		SignupDate:    time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC),
		AccountStatus: "active",
		AccountType:   "premium",
		TotalOrders:   12,
		LifetimeValue: 890.25,
		Orders: []domain.Order{
			{ID: 1, CustomerID: 1, OrderDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Amount: 79.99, Status: "delivered", Items: []string{"Wireless Mouse"}},
		},
	})
	records.AddTicket(domain.SupportTicket{
		ID:          1,
		CustomerID:  1,
		Title:       "Refund request for damaged item",
		Status:      domain.TicketStatusOpen,
		Priority:    "high",
		Category:    "refund",
		CreatedDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	})

	policies := memory.NewPolicyStore()
	_ = policies.SavePolicy(context.Background(), &domain.PolicyDocument{
		ID:      "refund_policy",
		Title:   "Refund Policy",
		Content: "Full refunds are available within 30 days of purchase.",
	})

	searcher := &stubSearcher{
		hits: []domain.RetrievedChunk{
			{
				Content:    "Full refunds are available within 30 days of purchase.",
				Similarity: 0.91,
				Metadata:   map[string]any{"filename": "refund_policy.txt"},
			},
		},
	}
	generator := &stubGenerator{answer: "Refunds are available within 30 days."}

	policy := services.NewPolicyAgent(policies, searcher, generator, services.DefaultPolicyCollection)
	customer := services.NewCustomerAgent(records)

	policyAgent = policy
	customerAgent = customer
	routerService = services.NewOrchestrator(policy, customer)
	assistantService = services.NewAssistant(records, searcher, generator, services.DefaultPolicyCollection, services.DefaultSearchResults)
	directoryService = services.NewDirectory(records, policies)
	ingestService = services.NewIngestor(searcher, services.DefaultPolicyCollection)

	return func() {
		assistantService = oldAssistant
		routerService = oldRouter
		policyAgent = oldPolicy
		customerAgent = oldCustomer
		directoryService = oldDirectory
		ingestService = oldIngest
	}
}
