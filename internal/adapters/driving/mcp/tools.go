package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/deskmate/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the customer support question to answer"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer     string         `json:"answer"`
	Sources    []SourceOutput `json:"sources"`
	HasContext bool           `json:"has_context"`
}

// SourceOutput describes one context source behind an answer.
type SourceOutput struct {
	ID        int    `json:"id"`
	Label     string `json:"label"`
	Relevance string `json:"relevance"`
	Type      string `json:"type"`
}

// QueryInput is the input schema for the routing and agent tools.
type QueryInput struct {
	Question string `json:"question" jsonschema:"the question to process"`
}

// QueryOutput is the output schema for the routing and agent tools.
type QueryOutput struct {
	Agent    string `json:"agent"`
	Kind     string `json:"kind"`
	Response string `json:"response"`
}

// CustomerNameInput is the input schema for customer lookup tools.
type CustomerNameInput struct {
	Name string `json:"name" jsonschema:"customer name or name fragment, matched case-insensitively"`
}

// CustomerOutput describes a customer record.
type CustomerOutput struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	AccountStatus string        `json:"account_status"`
	AccountType   string        `json:"account_type"`
	TotalOrders   int           `json:"total_orders"`
	LifetimeValue float64       `json:"lifetime_value"`
	Orders        []OrderOutput `json:"orders,omitempty"`
}

// OrderOutput describes one order.
type OrderOutput struct {
	ID        int64    `json:"id"`
	OrderDate string   `json:"order_date"`
	Amount    float64  `json:"amount"`
	Status    string   `json:"status"`
	Items     []string `json:"items"`
}

// TicketsOutput is the output schema for the ticket history tool.
type TicketsOutput struct {
	CustomerName string         `json:"customer_name"`
	CustomerID   int64          `json:"customer_id"`
	Total        int            `json:"total"`
	Tickets      []TicketOutput `json:"tickets"`
}

// TicketOutput describes one support ticket.
type TicketOutput struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	CreatedDate string `json:"created_date"`
}

// SearchCustomersInput is the input schema for the customer search tool.
type SearchCustomersInput struct {
	Query string `json:"query,omitempty" jsonschema:"substring matched against name, email and phone; empty returns all customers"`
}

// SearchCustomersOutput is the output schema for the customer search tool.
type SearchCustomersOutput struct {
	Customers []CustomerOutput `json:"customers"`
	Count     int              `json:"count"`
}

// PolicyDocumentInput is the input schema for the policy document tool.
type PolicyDocumentInput struct {
	PolicyID string `json:"policy_id" jsonschema:"canonical policy ID, e.g. refund_policy or terms_of_service"`
}

// PolicyDocumentOutput is the output schema for the policy document tool.
type PolicyDocumentOutput struct {
	PolicyID string `json:"policy_id"`
	Content  string `json:"content"`
}

// ExecuteSQLInput is the input schema for the SQL tool.
type ExecuteSQLInput struct {
	Query string `json:"query" jsonschema:"SELECT statement to run against the customer database"`
}

// ExecuteSQLOutput is the output schema for the SQL tool.
type ExecuteSQLOutput struct {
	Query string           `json:"query"`
	Count int              `json:"count"`
	Rows  []map[string]any `json:"rows"`
}

// HealthInput is the (empty) input schema for the health tool.
type HealthInput struct{}

// HealthOutput is the output schema for the health tool.
type HealthOutput struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Directory bool   `json:"directory"`
	Query     bool   `json:"query"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a support question using customer records and policy documents together",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "smart_query",
		Description: "Route a question to the policy or customer agent and return the response",
	}, s.handleSmartQuery)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_policy",
		Description: "Ask the policy agent directly, bypassing routing",
	}, s.handleQueryPolicy)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_customer",
		Description: "Ask the customer agent directly, bypassing routing",
	}, s.handleQueryCustomer)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_customer_info",
		Description: "Look up a customer profile with order history by name",
	}, s.handleGetCustomerInfo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_customer_tickets",
		Description: "Look up a customer's support ticket history by name",
	}, s.handleGetCustomerTickets)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_customer_database",
		Description: "Search customers by name, email or phone fragment",
	}, s.handleSearchCustomers)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_policy_document",
		Description: "Fetch the full text of a canonical policy document",
	}, s.handleGetPolicyDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "execute_sql_query",
		Description: "Run a SELECT query on the customer database; only SELECT statements are allowed",
	}, s.handleExecuteSQL)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "health",
		Description: "Report server health and wired capabilities",
	}, s.handleHealth)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Assistant.Answer(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:     answer.Text,
		Sources:    make([]SourceOutput, len(answer.Sources)),
		HasContext: answer.HasContext,
	}
	for i, src := range answer.Sources {
		output.Sources[i] = SourceOutput{
			ID:        src.ID,
			Label:     src.Label,
			Relevance: src.Relevance,
			Type:      src.Type,
		}
	}
	return nil, output, nil
}

// handleSmartQuery routes the question once and formats the result.
func (s *Server) handleSmartQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	result, err := s.ports.Router.Route(ctx, input.Question)
	if err != nil {
		return nil, QueryOutput{}, err
	}
	return nil, queryOutput(result, s.ports.Router.Format(result)), nil
}

// handleQueryPolicy handles the query_policy tool invocation.
func (s *Server) handleQueryPolicy(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	result, err := s.ports.Policy.ProcessQuery(ctx, input.Question)
	if err != nil {
		return nil, QueryOutput{}, err
	}
	return nil, queryOutput(result, s.ports.Router.Format(result)), nil
}

// handleQueryCustomer handles the query_customer tool invocation.
func (s *Server) handleQueryCustomer(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	result, err := s.ports.Customer.ProcessQuery(ctx, input.Question)
	if err != nil {
		return nil, QueryOutput{}, err
	}
	return nil, queryOutput(result, s.ports.Router.Format(result)), nil
}

// handleGetCustomerInfo handles the get_customer_info tool invocation.
func (s *Server) handleGetCustomerInfo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CustomerNameInput,
) (*mcp.CallToolResult, CustomerOutput, error) {
	if s.ports.Directory == nil {
		return nil, CustomerOutput{}, ErrMissingDirectoryService
	}

	customer, err := s.ports.Directory.Profile(ctx, input.Name)
	if err != nil {
		return nil, CustomerOutput{}, err
	}
	return nil, customerOutput(customer, true), nil
}

// handleGetCustomerTickets handles the get_customer_tickets tool invocation.
func (s *Server) handleGetCustomerTickets(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CustomerNameInput,
) (*mcp.CallToolResult, TicketsOutput, error) {
	if s.ports.Directory == nil {
		return nil, TicketsOutput{}, ErrMissingDirectoryService
	}

	history, err := s.ports.Directory.Tickets(ctx, input.Name)
	if err != nil {
		return nil, TicketsOutput{}, err
	}

	output := TicketsOutput{
		CustomerName: history.CustomerName,
		CustomerID:   history.CustomerID,
		Total:        history.Total,
		Tickets:      make([]TicketOutput, len(history.Tickets)),
	}
	for i, ticket := range history.Tickets {
		output.Tickets[i] = TicketOutput{
			ID:          ticket.ID,
			Title:       ticket.Title,
			Status:      ticket.Status,
			Priority:    ticket.Priority,
			Category:    ticket.Category,
			CreatedDate: ticket.CreatedDate.Format(time.DateOnly),
		}
	}
	return nil, output, nil
}

// handleSearchCustomers handles the search_customer_database tool invocation.
func (s *Server) handleSearchCustomers(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchCustomersInput,
) (*mcp.CallToolResult, SearchCustomersOutput, error) {
	if s.ports.Directory == nil {
		return nil, SearchCustomersOutput{}, ErrMissingDirectoryService
	}

	customers, err := s.ports.Directory.SearchCustomers(ctx, input.Query)
	if err != nil {
		return nil, SearchCustomersOutput{}, err
	}

	output := SearchCustomersOutput{
		Customers: make([]CustomerOutput, len(customers)),
		Count:     len(customers),
	}
	for i := range customers {
		output.Customers[i] = customerOutput(&customers[i], false)
	}
	return nil, output, nil
}

// handleGetPolicyDocument handles the get_policy_document tool invocation.
func (s *Server) handleGetPolicyDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PolicyDocumentInput,
) (*mcp.CallToolResult, PolicyDocumentOutput, error) {
	if s.ports.Directory == nil {
		return nil, PolicyDocumentOutput{}, ErrMissingDirectoryService
	}

	content, err := s.ports.Directory.PolicyDocument(ctx, input.PolicyID)
	if err != nil {
		return nil, PolicyDocumentOutput{}, err
	}
	return nil, PolicyDocumentOutput{PolicyID: input.PolicyID, Content: content}, nil
}

// handleExecuteSQL handles the execute_sql_query tool invocation. The
// query runner enforces the SELECT-only restriction.
func (s *Server) handleExecuteSQL(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExecuteSQLInput,
) (*mcp.CallToolResult, ExecuteSQLOutput, error) {
	if s.ports.Query == nil {
		return nil, ExecuteSQLOutput{}, ErrMissingQueryRunner
	}

	rows, err := s.ports.Query.RunQuery(ctx, input.Query)
	if err != nil {
		return nil, ExecuteSQLOutput{}, err
	}
	return nil, ExecuteSQLOutput{
		Query: input.Query,
		Count: len(rows),
		Rows:  rows,
	}, nil
}

// handleHealth handles the health tool invocation.
func (s *Server) handleHealth(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ HealthInput,
) (*mcp.CallToolResult, HealthOutput, error) {
	return nil, HealthOutput{
		Status:    "ok",
		Version:   Version,
		Directory: s.ports.Directory != nil,
		Query:     s.ports.Query != nil,
	}, nil
}

func queryOutput(result domain.AgentResult, response string) QueryOutput {
	return QueryOutput{
		Agent:    result.Agent,
		Kind:     string(result.Kind),
		Response: response,
	}
}

func customerOutput(c *domain.CustomerRecord, withOrders bool) CustomerOutput {
	out := CustomerOutput{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		AccountStatus: c.AccountStatus,
		AccountType:   c.AccountType,
		TotalOrders:   c.TotalOrders,
		LifetimeValue: c.LifetimeValue,
	}
	if withOrders {
		out.Orders = make([]OrderOutput, len(c.Orders))
		for i, order := range c.Orders {
			out.Orders[i] = OrderOutput{
				ID:        order.ID,
				OrderDate: order.OrderDate.Format(time.DateOnly),
				Amount:    order.Amount,
				Status:    order.Status,
				Items:     order.Items,
			}
		}
	}
	return out
}
