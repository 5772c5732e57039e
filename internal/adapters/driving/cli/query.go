package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deskmate/internal/core/ports/driving"
)

var queryAgent string

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Route a question to a single specialised agent",
	Long: `Classifies the question and dispatches it to either the policy
agent or the customer agent, then prints the agent's formatted result.

Use --agent to bypass classification and address an agent directly.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryAgent, "agent", "", "force an agent: policy or customer")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	question := args[0]

	if routerService == nil {
		return errors.New("router service not configured")
	}

	ctx := context.Background()

	switch queryAgent {
	case "":
		out, err := routerService.Process(ctx, question)
		if err != nil {
			return fmt.Errorf("processing query: %w", err)
		}
		cmd.Println(out)
		return nil
	case "policy":
		return runAgentQuery(ctx, cmd, policyAgent, question)
	case "customer":
		return runAgentQuery(ctx, cmd, customerAgent, question)
	default:
		return fmt.Errorf("unknown agent %q (expected policy or customer)", queryAgent)
	}
}

func runAgentQuery(ctx context.Context, cmd *cobra.Command, agent driving.AgentService, question string) error {
	if agent == nil {
		return errors.New("agent not configured")
	}

	result, err := agent.ProcessQuery(ctx, question)
	if err != nil {
		return fmt.Errorf("processing query: %w", err)
	}

	cmd.Println(routerService.Format(result))
	return nil
}
