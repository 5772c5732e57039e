package domain

import "time"

// Agent names reported in results.
const (
	// AgentPolicy identifies the policy agent.
	AgentPolicy = "policy"

	// AgentCustomer identifies the customer agent.
	AgentCustomer = "customer"
)

// ResultKind discriminates the AgentResult tagged union.
type ResultKind string

// Possible result kinds.
const (
	// ResultPolicySummary is a whole canonical policy document.
	ResultPolicySummary ResultKind = "policy_summary"

	// ResultPolicyAnswer is a RAG-synthesised policy answer.
	ResultPolicyAnswer ResultKind = "policy_query"

	// ResultCustomerData is a structured customer lookup.
	ResultCustomerData ResultKind = "customer_query"

	// ResultError is a recoverable agent-level failure.
	ResultError ResultKind = "error"
)

// AgentResult is the tagged union every agent returns. Exactly one of the
// variant pointers matching Kind is populated; consumers switch on Kind
// exhaustively.
type AgentResult struct {
	// Agent is the agent that produced the result.
	Agent string

	// Kind selects the populated variant.
	Kind ResultKind

	// PolicySummary is set when Kind == ResultPolicySummary.
	PolicySummary *PolicySummary

	// PolicyAnswer is set when Kind == ResultPolicyAnswer.
	PolicyAnswer *PolicyQueryAnswer

	// CustomerData is set when Kind == ResultCustomerData.
	CustomerData *CustomerData

	// Err is set when Kind == ResultError.
	Err *AgentError

	// Timestamp is when the result was produced.
	Timestamp time.Time
}

// PolicySummary is a whole policy document returned via the exact
// trigger-keyword shortcut.
type PolicySummary struct {
	// PolicyID is the canonical identifier, e.g. "refund_policy".
	PolicyID string

	// Title is the identifier in title case with underscores converted
	// to spaces, e.g. "Refund Policy".
	Title string

	// Content is the full policy text.
	Content string
}

// PolicyQueryAnswer is a similarity-search backed policy answer.
type PolicyQueryAnswer struct {
	// Question is the original question text.
	Question string

	// Answer is the synthesised answer, or the fixed no-information
	// message when no chunks were retrieved.
	Answer string

	// Sources are the raw top-k hits backing the answer, best-first.
	Sources []RetrievedChunk
}

// CustomerData is the composite the customer agent returns. Facets that
// were not requested are nil.
type CustomerData struct {
	// Question is the original question text.
	Question string

	// CustomerName is the extracted name used for the lookups.
	CustomerName string

	// Profile is the profile facet, nil when not requested.
	Profile *CustomerProfile

	// Tickets is the ticket-history facet, nil when not requested.
	Tickets *TicketHistory
}

// CustomerProfile is the profile facet of a customer lookup. A missed
// lookup is a structured value, not an error: Customer is nil and Err
// carries the reason.
type CustomerProfile struct {
	// Customer is the matched record with orders, nil when not found.
	Customer *CustomerRecord

	// Err is the not-found reason when Customer is nil.
	Err string
}

// TicketHistory is the ticket facet of a customer lookup.
type TicketHistory struct {
	// CustomerName is the name the lookup was keyed on.
	CustomerName string

	// CustomerID is the resolved customer, zero when not found.
	CustomerID int64

	// Total is the number of tickets on record.
	Total int

	// Tickets are the customer's tickets, most recent first.
	Tickets []SupportTicket

	// Err is the not-found reason when the customer did not resolve.
	Err string
}

// AgentError is a recoverable agent-level failure surfaced as data.
type AgentError struct {
	// Message is the user-facing explanation.
	Message string
}
