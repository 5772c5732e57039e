package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/deskmate/internal/core/domain"
	"github.com/custodia-labs/deskmate/internal/core/ports/driven"
	"github.com/custodia-labs/deskmate/internal/core/ports/driving"
)

// Directory provides direct structured lookups without going through
// the agents. Unlike the agents it surfaces misses as errors.
type Directory struct {
	records  driven.RecordStore
	policies driven.PolicyStore
}

var _ driving.DirectoryService = (*Directory)(nil)

func NewDirectory(records driven.RecordStore, policies driven.PolicyStore) *Directory {
	return &Directory{records: records, policies: policies}
}

func (d *Directory) Profile(ctx context.Context, name string) (*domain.CustomerRecord, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrNoCustomerName
	}
	customer, err := d.records.FindCustomer(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("looking up customer %q: %w", name, err)
	}
	return customer, nil
}

func (d *Directory) Tickets(ctx context.Context, name string) (*domain.TicketHistory, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrNoCustomerName
	}
	customer, err := d.records.FindCustomer(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("looking up customer %q: %w", name, err)
	}
	tickets, err := d.records.FindTickets(ctx, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("loading tickets for customer %d: %w", customer.ID, err)
	}
	return &domain.TicketHistory{
		CustomerName: customer.Name,
		CustomerID:   customer.ID,
		Total:        len(tickets),
		Tickets:      tickets,
	}, nil
}

func (d *Directory) SearchCustomers(ctx context.Context, query string) ([]domain.CustomerRecord, error) {
	customers, err := d.records.SearchCustomers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searching customers: %w", err)
	}
	return customers, nil
}

func (d *Directory) PolicyDocument(ctx context.Context, policyID string) (string, error) {
	content, err := d.policies.GetFullText(ctx, policyID)
	if err != nil {
		return "", fmt.Errorf("loading policy %s: %w", policyID, err)
	}
	return content, nil
}
