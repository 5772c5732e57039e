package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/deskmate/internal/core/domain"
	"github.com/custodia-labs/deskmate/internal/core/ports/driven"
	"github.com/custodia-labs/deskmate/internal/core/ports/driving"
)

// Facet keywords decide which slices of customer data a question asks
// for. A question matching neither facet gets both.
var (
	profileFacetKeywords = []string{"profile", "customer info", "account", "details"}
	ticketFacetKeywords  = []string{"ticket", "support", "issue", "complaint", "history"}
)

const missingNameMessage = "Could not identify customer name in question. Please specify the customer name."

// CustomerAgent answers questions about individual customer records:
// profiles, order history and support tickets. It never touches the
// policy collection.
type CustomerAgent struct {
	records driven.RecordStore
}

var _ driving.AgentService = (*CustomerAgent)(nil)

func NewCustomerAgent(records driven.RecordStore) *CustomerAgent {
	return &CustomerAgent{records: records}
}

// ProcessQuery extracts the customer name from the question and fetches
// the requested facets. A missing name or unknown customer yields an
// error result, not a Go error: only store failures propagate.
func (a *CustomerAgent) ProcessQuery(ctx context.Context, question string) (domain.AgentResult, error) {
	result := domain.AgentResult{
		Agent:     domain.AgentCustomer,
		Kind:      domain.ResultCustomerData,
		Timestamp: time.Now(),
	}

	name, ok := ExtractCustomerName(question)
	if !ok {
		result.Kind = domain.ResultError
		result.Err = &domain.AgentError{Message: missingNameMessage}
		return result, nil
	}

	lower := strings.ToLower(question)
	wantProfile := containsAny(lower, profileFacetKeywords)
	wantTickets := containsAny(lower, ticketFacetKeywords)
	if !wantProfile && !wantTickets {
		wantProfile, wantTickets = true, true
	}

	data := &domain.CustomerData{
		Question:     question,
		CustomerName: name,
	}

	customer, err := a.records.FindCustomer(ctx, name)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.AgentResult{}, fmt.Errorf("looking up customer %q: %w", name, err)
	}

	if wantProfile {
		profile := &domain.CustomerProfile{}
		if customer != nil {
			profile.Customer = customer
		} else {
			profile.Err = fmt.Sprintf("customer %q not found", name)
		}
		data.Profile = profile
	}

	if wantTickets {
		history := &domain.TicketHistory{CustomerName: name}
		if customer != nil {
			tickets, err := a.records.FindTickets(ctx, customer.ID)
			if err != nil {
				return domain.AgentResult{}, fmt.Errorf("loading tickets for customer %d: %w", customer.ID, err)
			}
			history.CustomerID = customer.ID
			history.Total = len(tickets)
			history.Tickets = tickets
		} else {
			history.Err = fmt.Sprintf("customer %q not found", name)
		}
		data.Tickets = history
	}

	result.CustomerData = data
	return result, nil
}
