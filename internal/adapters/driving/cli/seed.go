package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deskmate/internal/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample customers, orders, tickets and policies",
	Long: `Resets the customer database to the built-in sample dataset, saves
the canonical policy documents and indexes them for search.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	if store == nil {
		return errors.New("store not configured")
	}

	ctx := context.Background()

	if err := store.Seed(ctx); err != nil {
		return err
	}
	cmd.Println("Sample data loaded.")

	if ingestService == nil {
		return nil
	}

	policies, err := store.PolicyStore().ListPolicies(ctx)
	if err != nil {
		return fmt.Errorf("listing policies: %w", err)
	}

	total := 0
	for _, p := range policies {
		count, err := ingestService.IngestDocument(ctx, p.ID, p.Title, p.Content, map[string]any{
			"filename": p.ID + ".txt",
		})
		if err != nil {
			logger.Warn("Indexing %s failed: %v", p.ID, err)
			continue
		}
		total += count
	}
	cmd.Printf("Indexed %d policy chunks.\n", total)
	return nil
}
