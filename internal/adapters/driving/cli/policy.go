package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deskmate/internal/core/domain"
)

var policyCmd = &cobra.Command{
	Use:   "policy [policy-id]",
	Short: "Print the full text of a canonical policy document",
	Long: `Prints a policy document by identifier, e.g. refund_policy,
warranty_policy, shipping_policy, privacy_policy or terms_of_service.`,
	Args: cobra.ExactArgs(1),
	RunE: runPolicy,
}

func init() {
	rootCmd.AddCommand(policyCmd)
}

func runPolicy(cmd *cobra.Command, args []string) error {
	if directoryService == nil {
		return errors.New("directory service not configured")
	}

	text, err := directoryService.PolicyDocument(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("policy %q not found", args[0])
		}
		return fmt.Errorf("looking up policy: %w", err)
	}

	cmd.Println(text)
	return nil
}
