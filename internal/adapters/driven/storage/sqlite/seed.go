package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/deskmate/internal/core/domain"
)

type seedCustomer struct {
	id            int64
	name          string
	email         string
	phone         string
	signupDate    string
	accountStatus string
	accountType   string
	totalOrders   int
	lifetimeValue float64
}

var seedCustomers = []seedCustomer{
	{1, "Ema Johnson", "ema.johnson@email.com", "+1-555-0101", "2023-06-15", "active", "premium", 12, 4500.00},
	{2, "John Smith", "john.smith@email.com", "+1-555-0102", "2023-01-20", "active", "standard", 5, 1200.00},
	{3, "Sarah Chen", "sarah.chen@email.com", "+1-555-0103", "2022-11-10", "active", "premium", 25, 8900.00},
	{4, "Michael Davis", "michael.d@email.com", "+1-555-0104", "2023-09-05", "active", "standard", 3, 650.00},
	{5, "Lisa Anderson", "lisa.anderson@email.com", "+1-555-0105", "2022-03-22", "inactive", "standard", 8, 1800.00},
}

type seedTicket struct {
	id           int64
	customerID   int64
	title        string
	description  string
	status       string
	createdDate  string
	resolvedDate string
	category     string
	priority     string
}

var seedTickets = []seedTicket{
	{1, 1, "Refund request for order #5001",
		"I would like to return item received on 2024-01-10 for a refund.",
		"closed", "2024-01-11", "2024-01-18", "refund", "high"},
	{2, 1, "Account login issues",
		"Cannot login to my account. Getting error 403.",
		"closed", "2024-01-05", "2024-01-06", "technical", "critical"},
	{3, 1, "Shipping delay question",
		"My order #5045 hasn't arrived yet. Ordered on 2024-01-12.",
		"closed", "2024-01-16", "2024-01-17", "shipping", "medium"},
	{4, 1, "Subscription upgrade",
		"Want to upgrade from Standard to Premium plan.",
		"open", "", "", "account", "low"},
	{5, 2, "Product quality complaint",
		"Item received has defects. Requesting replacement.",
		"closed", "2024-01-08", "2024-01-15", "quality", "high"},
}

type seedOrder struct {
	id         int64
	customerID int64
	orderDate  string
	amount     float64
	status     string
	items      []string
}

var seedOrders = []seedOrder{
	{1, 1, "2024-01-10", 299.99, "delivered", []string{"Wireless Earbuds", "USB Cable"}},
	{2, 1, "2024-01-12", 450.00, "delivered", []string{"Laptop Stand", "Keyboard", "Mouse Pad"}},
	{3, 2, "2024-01-08", 79.99, "delivered", []string{"Phone Case"}},
	{4, 3, "2024-01-15", 899.99, "processing", []string{"Tablet", "Stylus"}},
}

var seedPolicies = []domain.PolicyDocument{
	{
		ID:    "refund_policy",
		Title: "Refund Policy",
		Content: "Items may be returned within 30 days of delivery for a full refund. " +
			"Products must be unused and in original packaging. Refunds are issued to the " +
			"original payment method within 5-7 business days of receiving the return. " +
			"Shipping costs are non-refundable unless the return is due to our error. " +
			"Digital products and gift cards are not eligible for refunds.",
	},
	{
		ID:    "warranty_policy",
		Title: "Warranty Policy",
		Content: "All electronics carry a 12-month limited warranty covering manufacturing " +
			"defects. Premium account holders receive an extended 24-month warranty at no " +
			"extra cost. The warranty does not cover accidental damage, water damage or " +
			"unauthorized repairs. To file a warranty claim, contact support with your order " +
			"number and a description of the defect.",
	},
	{
		ID:    "shipping_policy",
		Title: "Shipping Policy",
		Content: "Standard shipping takes 5-7 business days and is free on orders over $50. " +
			"Express shipping (2-3 business days) is available for a flat $9.99. Orders placed " +
			"before 2pm local time ship the same day. We currently ship to the United States " +
			"and Canada only. Tracking numbers are emailed once the order leaves our warehouse.",
	},
	{
		ID:    "privacy_policy",
		Title: "Privacy Policy",
		Content: "We collect only the information needed to fulfil your orders: name, contact " +
			"details, shipping address and order history. We never sell personal data to third " +
			"parties. Payment details are processed by our payment provider and never stored on " +
			"our servers. You may request a copy or deletion of your data at any time by " +
			"contacting support.",
	},
	{
		ID:    "terms_of_service",
		Title: "Terms Of Service",
		Content: "By using this service you agree to provide accurate account information and " +
			"to use the service for lawful purposes only. Accounts may be suspended for abuse, " +
			"fraud or chargeback misuse. Prices and availability are subject to change without " +
			"notice. These terms are governed by the laws of the State of Delaware.",
	},
}

// Seed resets the database to a small, deterministic sample dataset:
// five customers, their tickets and orders, and the five canonical
// policy documents. Existing rows are removed first.
func (s *Store) Seed(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"orders", "support_tickets", "customers", "policy_documents"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, c := range seedCustomers {
		signup, err := time.Parse("2006-01-02", c.signupDate)
		if err != nil {
			return fmt.Errorf("parsing signup date: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO customers (id, name, email, phone, address, signup_date,
				account_status, account_type, total_orders, lifetime_value)
			VALUES (?, ?, ?, ?, '', ?, ?, ?, ?, ?)
		`, c.id, c.name, c.email, c.phone, signup, c.accountStatus, c.accountType,
			c.totalOrders, c.lifetimeValue); err != nil {
			return fmt.Errorf("seeding customer %s: %w", c.name, err)
		}
	}

	for _, t := range seedTickets {
		created, resolved, err := seedTicketDates(t)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO support_tickets (id, customer_id, title, description, status,
				priority, category, created_date, resolved_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, t.id, t.customerID, t.title, t.description, t.status,
			t.priority, t.category, created, resolved); err != nil {
			return fmt.Errorf("seeding ticket %d: %w", t.id, err)
		}
	}

	for _, o := range seedOrders {
		orderDate, err := time.Parse("2006-01-02", o.orderDate)
		if err != nil {
			return fmt.Errorf("parsing order date: %w", err)
		}
		itemsJSON, err := json.Marshal(o.items)
		if err != nil {
			return fmt.Errorf("marshalling order items: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO orders (id, customer_id, order_date, amount, status, items)
			VALUES (?, ?, ?, ?, ?, ?)
		`, o.id, o.customerID, orderDate, o.amount, o.status, string(itemsJSON)); err != nil {
			return fmt.Errorf("seeding order %d: %w", o.id, err)
		}
	}

	now := time.Now().UTC()
	for _, doc := range seedPolicies {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO policy_documents (id, title, content, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, doc.ID, doc.Title, doc.Content, now, now); err != nil {
			return fmt.Errorf("seeding policy %s: %w", doc.ID, err)
		}
	}

	return tx.Commit()
}

// seedTicketDates resolves ticket dates; an empty created date means
// "two days ago" so the sample set always contains a fresh open ticket.
func seedTicketDates(t seedTicket) (time.Time, any, error) {
	var created time.Time
	if t.createdDate == "" {
		created = time.Now().UTC().AddDate(0, 0, -2)
	} else {
		var err error
		created, err = time.Parse("2006-01-02", t.createdDate)
		if err != nil {
			return time.Time{}, nil, fmt.Errorf("parsing ticket created date: %w", err)
		}
	}

	if t.resolvedDate == "" {
		return created, nil, nil
	}
	resolved, err := time.Parse("2006-01-02", t.resolvedDate)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("parsing ticket resolved date: %w", err)
	}
	return created, resolved, nil
}
