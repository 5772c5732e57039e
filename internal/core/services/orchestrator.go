package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/deskmate/internal/core/domain"
	"github.com/custodia-labs/deskmate/internal/core/ports/driving"
	"github.com/custodia-labs/deskmate/internal/logger"
)

const maxFormattedTickets = 5

// Orchestrator routes each question to exactly one agent based on
// keyword matching. Customer signals win over policy signals; questions
// matching neither go to the policy agent, which can always fall back
// to retrieval.
type Orchestrator struct {
	policy   *PolicyAgent
	customer *CustomerAgent
}

var _ driving.RouterService = (*Orchestrator)(nil)

func NewOrchestrator(policy *PolicyAgent, customer *CustomerAgent) *Orchestrator {
	return &Orchestrator{policy: policy, customer: customer}
}

// Route selects an agent for the question and returns its structured
// result. Exactly one agent runs per call.
func (o *Orchestrator) Route(ctx context.Context, question string) (domain.AgentResult, error) {
	switch Classify(question, nil).Kind {
	case domain.QueryCustomer:
		logger.Debug("routing to customer agent: %s", question)
		return o.customer.ProcessQuery(ctx, question)
	case domain.QueryPolicy:
		logger.Debug("routing to policy agent: %s", question)
		return o.policy.ProcessQuery(ctx, question)
	default:
		logger.Debug("no keyword match, defaulting to policy agent: %s", question)
		return o.policy.ProcessQuery(ctx, question)
	}
}

// Process routes the question and renders the result for display.
func (o *Orchestrator) Process(ctx context.Context, question string) (string, error) {
	result, err := o.Route(ctx, question)
	if err != nil {
		return "", err
	}
	return o.Format(result), nil
}

// Format renders an agent result as markdown-flavoured prose.
func (o *Orchestrator) Format(result domain.AgentResult) string {
	switch result.Kind {
	case domain.ResultPolicySummary:
		s := result.PolicySummary
		return fmt.Sprintf("**%s**\n\n%s", s.Title, s.Content)

	case domain.ResultPolicyAnswer:
		return result.PolicyAnswer.Answer

	case domain.ResultCustomerData:
		return formatCustomerData(result.CustomerData)

	case domain.ResultError:
		return result.Err.Message

	default:
		return "Unable to process query"
	}
}

func formatCustomerData(data *domain.CustomerData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Customer: %s**\n\n", data.CustomerName)

	if p := data.Profile; p != nil {
		if p.Err != "" {
			fmt.Fprintf(&b, "%s\n\n", p.Err)
		} else if c := p.Customer; c != nil {
			b.WriteString("**Profile:**\n")
			fmt.Fprintf(&b, "- Email: %s\n", c.Email)
			fmt.Fprintf(&b, "- Phone: %s\n", c.Phone)
			fmt.Fprintf(&b, "- Account Status: %s\n", c.AccountStatus)
			fmt.Fprintf(&b, "- Account Type: %s\n", c.AccountType)
			fmt.Fprintf(&b, "- Total Orders: %d\n", c.TotalOrders)
			fmt.Fprintf(&b, "- Lifetime Value: $%.2f\n\n", c.LifetimeValue)
		}
	}

	if h := data.Tickets; h != nil {
		if h.Err != "" {
			fmt.Fprintf(&b, "%s\n", h.Err)
		} else {
			fmt.Fprintf(&b, "**Support Tickets (%d):**\n", h.Total)
			for i, ticket := range h.Tickets {
				if i == maxFormattedTickets {
					break
				}
				fmt.Fprintf(&b, "- [%s] %s (Priority: %s)\n",
					strings.ToUpper(ticket.Status), ticket.Title, ticket.Priority)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
