package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deskmate/internal/core/domain"
)

func testRecordStore() *mockRecordStore {
	return &mockRecordStore{
		customers: []domain.CustomerRecord{
			{
				ID:            1,
				Name:          "Sarah Chen",
				Email:         "sarah.chen@example.com",
				AccountStatus: "active",
				AccountType:   "premium",
			},
		},
		tickets: map[int64][]domain.SupportTicket{
			1: {
				{ID: 10, CustomerID: 1, Title: "Login broken", Status: domain.TicketStatusOpen, Priority: "high", CreatedDate: time.Now()},
				{ID: 11, CustomerID: 1, Title: "Billing question", Status: domain.TicketStatusClosed, Priority: "low", CreatedDate: time.Now()},
			},
		},
	}
}

func TestCustomerAgent_NoNameIsErrorResult(t *testing.T) {
	agent := NewCustomerAgent(testRecordStore())

	result, err := agent.ProcessQuery(context.Background(), "show me everything")
	require.NoError(t, err)

	assert.Equal(t, domain.AgentCustomer, result.Agent)
	assert.Equal(t, domain.ResultError, result.Kind)
	require.NotNil(t, result.Err)
	assert.Equal(t, missingNameMessage, result.Err.Message)
}

func TestCustomerAgent_ProfileFacetOnly(t *testing.T) {
	agent := NewCustomerAgent(testRecordStore())

	result, err := agent.ProcessQuery(context.Background(), `profile for "Sarah Chen"`)
	require.NoError(t, err)

	assert.Equal(t, domain.ResultCustomerData, result.Kind)
	require.NotNil(t, result.CustomerData)
	require.NotNil(t, result.CustomerData.Profile)
	assert.Nil(t, result.CustomerData.Tickets)
	assert.Equal(t, "Sarah Chen", result.CustomerData.Profile.Customer.Name)
}

func TestCustomerAgent_TicketFacetOnly(t *testing.T) {
	agent := NewCustomerAgent(testRecordStore())

	result, err := agent.ProcessQuery(context.Background(), `tickets for "Sarah Chen"`)
	require.NoError(t, err)

	require.NotNil(t, result.CustomerData)
	assert.Nil(t, result.CustomerData.Profile)
	require.NotNil(t, result.CustomerData.Tickets)
	assert.Equal(t, 2, result.CustomerData.Tickets.Total)
	assert.Equal(t, int64(1), result.CustomerData.Tickets.CustomerID)
}

func TestCustomerAgent_NeitherFacetFetchesBoth(t *testing.T) {
	agent := NewCustomerAgent(testRecordStore())

	result, err := agent.ProcessQuery(context.Background(), `tell me about "Sarah Chen"`)
	require.NoError(t, err)

	require.NotNil(t, result.CustomerData)
	assert.NotNil(t, result.CustomerData.Profile)
	assert.NotNil(t, result.CustomerData.Tickets)
}

func TestCustomerAgent_SubstringResolvesFullName(t *testing.T) {
	agent := NewCustomerAgent(testRecordStore())

	result, err := agent.ProcessQuery(context.Background(), "profile for Sarah")
	require.NoError(t, err)
	require.NotNil(t, result.CustomerData.Profile)
	assert.Equal(t, "Sarah Chen", result.CustomerData.Profile.Customer.Name)
}

func TestCustomerAgent_UnknownCustomerStructuredMiss(t *testing.T) {
	agent := NewCustomerAgent(testRecordStore())

	result, err := agent.ProcessQuery(context.Background(), `tell me about "Bob Vance"`)
	require.NoError(t, err)

	assert.Equal(t, domain.ResultCustomerData, result.Kind)
	require.NotNil(t, result.CustomerData.Profile)
	assert.Equal(t, `customer "Bob Vance" not found`, result.CustomerData.Profile.Err)
	require.NotNil(t, result.CustomerData.Tickets)
	assert.Equal(t, `customer "Bob Vance" not found`, result.CustomerData.Tickets.Err)
}

func TestCustomerAgent_StoreErrorPropagates(t *testing.T) {
	store := testRecordStore()
	store.findErr = errors.New("db locked")
	agent := NewCustomerAgent(store)

	_, err := agent.ProcessQuery(context.Background(), `profile for "Sarah Chen"`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db locked")
}
