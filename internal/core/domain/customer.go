package domain

import "time"

// CustomerRecord represents a customer with account state and owned
// orders and support tickets. Email is unique across customers.
type CustomerRecord struct {
	// ID is the unique identifier for the customer.
	ID int64

	// Name is the customer's full name.
	Name string

	// Email is the customer's email address (unique).
	Email string

	// Phone is the customer's phone number.
	Phone string

	// Address is the customer's postal address. May be empty.
	Address string

	// SignupDate is when the customer registered.
	SignupDate time.Time

	// AccountStatus is "active" or "inactive".
	AccountStatus string

	// AccountType is the subscription tier, e.g. "standard" or "premium".
	AccountType string

	// TotalOrders is the lifetime order count.
	TotalOrders int

	// LifetimeValue is the total revenue from this customer.
	LifetimeValue float64

	// Orders are the customer's orders, most recent first.
	Orders []Order
}

// Order represents a single purchase belonging to one customer.
type Order struct {
	// ID is the unique identifier for the order.
	ID int64

	// CustomerID links to the owning CustomerRecord.
	CustomerID int64

	// OrderDate is when the order was placed.
	OrderDate time.Time

	// Amount is the order total.
	Amount float64

	// Status is the fulfilment status, e.g. "processing" or "delivered".
	Status string

	// Items are the purchased item names.
	Items []string
}

// Ticket status values.
const (
	// TicketStatusOpen indicates the ticket is awaiting resolution.
	TicketStatusOpen = "open"

	// TicketStatusClosed indicates the ticket has been resolved.
	TicketStatusClosed = "closed"
)

// SupportTicket represents a support case belonging to one customer.
// Tickets are created externally and are read-only from the core's
// perspective.
type SupportTicket struct {
	// ID is the unique identifier for the ticket.
	ID int64

	// CustomerID links to the owning CustomerRecord.
	CustomerID int64

	// Title is the short subject line.
	Title string

	// Description is the full problem report.
	Description string

	// Status is "open", "closed", or a store-defined value.
	Status string

	// Priority is "low", "medium", "high", or "critical".
	Priority string

	// Category groups tickets, e.g. "refund" or "technical".
	Category string

	// CreatedDate is when the ticket was opened.
	CreatedDate time.Time

	// ResolvedDate is when the ticket was closed. Nil while open.
	ResolvedDate *time.Time
}
