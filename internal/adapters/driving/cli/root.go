// Package cli implements the deskmate command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deskmate/internal/adapters/driven/ai"
	configfile "github.com/custodia-labs/deskmate/internal/adapters/driven/config/file"
	"github.com/custodia-labs/deskmate/internal/adapters/driven/search/local"
	"github.com/custodia-labs/deskmate/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/deskmate/internal/core/ports/driven"
	"github.com/custodia-labs/deskmate/internal/core/ports/driving"
	"github.com/custodia-labs/deskmate/internal/core/services"
	"github.com/custodia-labs/deskmate/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose bool
	dataDir string
)

// Services wired by initServices. Tests swap these for mocks.
var (
	assistantService driving.AssistantService
	routerService    driving.RouterService
	policyAgent      driving.AgentService
	customerAgent    driving.AgentService
	directoryService driving.DirectoryService
	ingestService    driving.IngestService
	queryRunner      driven.QueryRunner

	store *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "deskmate",
	Short: "Customer support assistant over policies and customer records",
	Long: `Deskmate answers customer support questions from two sources: the
customer database (profiles, orders, support tickets) and the indexed
policy and FAQ documents.

Questions can be routed to a single specialised agent (query) or
answered over combined context from both sources (ask).`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.deskmate/data)")
}

// wireReal is set by Execute. Tests drive rootCmd directly and inject
// their own services, so wiring stays off for them.
var wireReal bool

// Execute runs the root command, wiring real services on first use.
func Execute() error {
	wireReal = true
	defer func() {
		if store != nil {
			store.Close() //nolint:errcheck
		}
	}()
	return rootCmd.Execute()
}

// initServices wires the real services before a command runs. Commands
// that don't touch any service skip wiring.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if !wireReal || assistantService != nil {
		return nil
	}

	switch cmd.Name() {
	case "version", "help", "completion":
		return nil
	}

	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	s, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	store = s

	generator, err := ai.NewTextGenerator(cfg)
	if err != nil {
		store.Close()
		return err
	}
	if generator == nil {
		logger.Warn("no LLM provider configured, answers degrade to raw excerpts")
	}

	embedder, err := ai.NewEmbeddingService(cfg)
	if err != nil {
		store.Close()
		return err
	}
	if embedder == nil {
		store.Close()
		return fmt.Errorf("embedding provider %q needs an API key", cfg.GetString("embedding.provider"))
	}

	searcher := local.NewSearcher(store.ChunkStore(), embedder)

	collection := cfg.GetString("search.collection")
	if collection == "" {
		collection = services.DefaultPolicyCollection
	}
	nResults := cfg.GetInt("search.results")

	policy := services.NewPolicyAgent(store.PolicyStore(), searcher, generator, collection)
	customer := services.NewCustomerAgent(store.RecordStore())

	policyAgent = policy
	customerAgent = customer
	routerService = services.NewOrchestrator(policy, customer)
	assistantService = services.NewAssistant(store.RecordStore(), searcher, generator, collection, nResults)
	directoryService = services.NewDirectory(store.RecordStore(), store.PolicyStore())
	ingestService = services.NewIngestor(searcher, collection)
	queryRunner = store.QueryRunner()

	return nil
}
