package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/deskmate/internal/core/domain"
	"github.com/custodia-labs/deskmate/internal/logger"
)

// Gate keywords decide which context sources a question touches. A
// question matching neither gate still searches the customer database
// so that plain name lookups work.
var (
	customerGateKeywords = []string{
		"customer", "profile", "order", "ticket", "support",
		"history", "past", "recent", "account", "contact",
		"invoice", "purchase", "transaction",
	}
	policyGateKeywords = []string{
		"policy", "faq", "return", "refund", "shipping", "payment",
		"exchange", "warranty", "guarantee", "rules", "guidelines",
		"terms", "condition", "process", "procedure", "how",
		"what is", "explain",
	}
)

const maxContextTickets = 3

// gatherContext assembles numbered context blocks for the question,
// customer data first, policy chunks after. Customer-database failures
// degrade with a warning; policy search failures propagate.
func (a *Assistant) gatherContext(ctx context.Context, question string) ([]string, []domain.Source, error) {
	lower := strings.ToLower(question)

	mentioned := a.mentionedCustomers(ctx, lower)
	wantCustomer := len(mentioned) > 0 || containsAny(lower, customerGateKeywords)
	wantPolicy := containsAny(lower, policyGateKeywords)
	if !wantCustomer && !wantPolicy {
		wantCustomer = true
	}

	var blocks []string
	var sources []domain.Source

	if wantCustomer {
		if block := a.customerContext(ctx, question, mentioned); block != "" {
			blocks = append(blocks, block)
			sources = append(sources, domain.Source{
				ID:        len(blocks),
				Label:     "customer_database",
				Relevance: "100%",
				Type:      domain.SourceTypeCustomerData,
			})
		}
	}

	if wantPolicy {
		chunks, err := a.searcher.Search(ctx, a.collection, question, a.nResults)
		if err != nil {
			return nil, nil, fmt.Errorf("searching documents: %w", err)
		}
		for _, chunk := range chunks {
			blocks = append(blocks, chunk.Content)
			sources = append(sources, domain.Source{
				ID:        len(blocks),
				Label:     chunkLabel(chunk),
				Relevance: fmt.Sprintf("%.0f%%", chunk.Similarity*100),
				Type:      chunkType(chunk),
			})
		}
	}

	for i, block := range blocks {
		blocks[i] = fmt.Sprintf("[Source %d]\n%s", i+1, block)
	}
	return blocks, sources, nil
}

// mentionedCustomers returns the names of known customers that appear
// verbatim in the lowercased question. Store failures degrade to no
// matches.
func (a *Assistant) mentionedCustomers(ctx context.Context, lower string) []string {
	customers, err := a.records.SearchCustomers(ctx, "")
	if err != nil {
		logger.Warn("listing customers for name detection: %v", err)
		return nil
	}
	var mentioned []string
	for _, c := range customers {
		if c.Name != "" && strings.Contains(lower, strings.ToLower(c.Name)) {
			mentioned = append(mentioned, c.Name)
		}
	}
	return mentioned
}

// customerContext renders matching customer records as a single context
// block, or "" when nothing matches. All failures degrade with a
// warning.
func (a *Assistant) customerContext(ctx context.Context, question string, mentioned []string) string {
	var customers []domain.CustomerRecord
	if len(mentioned) > 0 {
		for _, name := range mentioned {
			found, err := a.records.SearchCustomers(ctx, name)
			if err != nil {
				logger.Warn("searching customers for %q: %v", name, err)
				continue
			}
			if len(found) > 0 {
				customers = found
				break
			}
		}
	} else {
		found, err := a.records.SearchCustomers(ctx, question)
		if err != nil {
			logger.Warn("searching customers: %v", err)
			return ""
		}
		customers = found
	}

	if len(customers) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("=== CUSTOMER DATABASE RESULTS ===\n")
	for _, c := range customers {
		fmt.Fprintf(&b, "\nCustomer: %s\n", orNA(c.Name))
		fmt.Fprintf(&b, "Email: %s\n", orNA(c.Email))
		fmt.Fprintf(&b, "Phone: %s\n", orNA(c.Phone))
		fmt.Fprintf(&b, "Address: %s\n", orNA(c.Address))
		fmt.Fprintf(&b, "Account Status: %s", orNA(c.AccountStatus))

		tickets, err := a.records.FindTickets(ctx, c.ID)
		if err != nil {
			logger.Warn("loading tickets for customer %d: %v", c.ID, err)
			b.WriteString("\n")
			continue
		}
		if len(tickets) > 0 {
			fmt.Fprintf(&b, "\n\nSupport Tickets (%d):\n", len(tickets))
			for i, ticket := range tickets {
				if i == maxContextTickets {
					break
				}
				fmt.Fprintf(&b, "  - %s: %s\n", ticket.Title, ticket.Status)
			}
		} else {
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// chunkLabel derives a display label from chunk metadata.
func chunkLabel(chunk domain.RetrievedChunk) string {
	if name, ok := chunk.Metadata["filename"].(string); ok && name != "" {
		for _, ext := range []string{".txt", ".pdf", ".md"} {
			name = strings.TrimSuffix(name, ext)
		}
		return name
	}
	return "document"
}

func chunkType(chunk domain.RetrievedChunk) string {
	if t, ok := chunk.Metadata["type"].(string); ok && t != "" {
		return t
	}
	return domain.SourceTypeDocument
}
