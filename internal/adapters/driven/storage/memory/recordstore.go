// Package memory provides in-memory store implementations used in
// tests and for running without a database file.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/deskmate/internal/core/domain"
	"github.com/custodia-labs/deskmate/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
type RecordStore struct {
	mu        sync.RWMutex
	customers map[int64]domain.CustomerRecord
	tickets   map[int64][]domain.SupportTicket
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		customers: make(map[int64]domain.CustomerRecord),
		tickets:   make(map[int64][]domain.SupportTicket),
	}
}

// AddCustomer stores a customer record.
func (s *RecordStore) AddCustomer(customer domain.CustomerRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[customer.ID] = customer
}

// AddTicket stores a support ticket.
func (s *RecordStore) AddTicket(ticket domain.SupportTicket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets[ticket.CustomerID] = append(s.tickets[ticket.CustomerID], ticket)
}

// FindCustomer returns the lowest-ID customer whose name contains the
// substring, case-insensitively.
func (s *RecordStore) FindCustomer(_ context.Context, nameSubstring string) (*domain.CustomerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lower := strings.ToLower(nameSubstring)
	var match *domain.CustomerRecord
	for id, customer := range s.customers {
		if !strings.Contains(strings.ToLower(customer.Name), lower) {
			continue
		}
		if match == nil || id < match.ID {
			c := customer
			match = &c
		}
	}
	if match == nil {
		return nil, domain.ErrNotFound
	}
	return match, nil
}

// FindTickets returns all tickets for a customer, most recent first.
func (s *RecordStore) FindTickets(_ context.Context, customerID int64) ([]domain.SupportTicket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tickets := make([]domain.SupportTicket, len(s.tickets[customerID]))
	copy(tickets, s.tickets[customerID])
	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].CreatedDate.After(tickets[j].CreatedDate)
	})
	return tickets, nil
}

// SearchCustomers returns customers matching the substring on name,
// email or phone, ordered by ID. Empty substring returns everything.
func (s *RecordStore) SearchCustomers(_ context.Context, substring string) ([]domain.CustomerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lower := strings.ToLower(substring)
	var out []domain.CustomerRecord
	for _, customer := range s.customers {
		if substring == "" ||
			strings.Contains(strings.ToLower(customer.Name), lower) ||
			strings.Contains(strings.ToLower(customer.Email), lower) ||
			strings.Contains(customer.Phone, substring) {
			out = append(out, customer)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
