package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/deskmate/internal/core/domain"
	"github.com/custodia-labs/deskmate/internal/core/ports/driven"
	"github.com/custodia-labs/deskmate/internal/core/ports/driving"
	"github.com/custodia-labs/deskmate/internal/logger"
)

// policyTriggers maps trigger keywords to well-known policy documents.
// Order matters: the first trigger found in the question wins, so a
// question mentioning both refunds and warranties gets the refund
// policy.
var policyTriggers = []struct {
	keyword  string
	policyID string
}{
	{"refund", "refund_policy"},
	{"warranty", "warranty_policy"},
	{"shipping", "shipping_policy"},
	{"privacy", "privacy_policy"},
	{"terms", "terms_of_service"},
}

const policySearchTopK = 3

const noRelevantPolicyAnswer = "I couldn't find relevant policy information for your question. Please try rephrasing or contact support."

// PolicyAgent answers policy and FAQ questions. Trigger keywords map
// straight to a full policy document; everything else goes through
// retrieval over the policy collection, with the generator synthesising
// an answer from the retrieved chunks.
type PolicyAgent struct {
	policies   driven.PolicyStore
	searcher   driven.DocumentSearcher
	generator  driven.TextGenerator
	collection string
}

var _ driving.AgentService = (*PolicyAgent)(nil)

// NewPolicyAgent creates a policy agent over the given stores. The
// generator may be nil, in which case retrieval answers degrade to the
// top chunk's raw content.
func NewPolicyAgent(policies driven.PolicyStore, searcher driven.DocumentSearcher, generator driven.TextGenerator, collection string) *PolicyAgent {
	return &PolicyAgent{
		policies:   policies,
		searcher:   searcher,
		generator:  generator,
		collection: collection,
	}
}

// ProcessQuery answers a policy question. Store lookups that miss fall
// through to retrieval rather than failing the query; generation errors
// are returned to the caller.
func (a *PolicyAgent) ProcessQuery(ctx context.Context, question string) (domain.AgentResult, error) {
	lower := strings.ToLower(question)

	for _, trigger := range policyTriggers {
		if !strings.Contains(lower, trigger.keyword) {
			continue
		}
		content, err := a.policies.GetFullText(ctx, trigger.policyID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Debug("policy document %s not stored, falling back to search", trigger.policyID)
				break
			}
			return domain.AgentResult{}, fmt.Errorf("loading policy %s: %w", trigger.policyID, err)
		}
		return domain.AgentResult{
			Agent: domain.AgentPolicy,
			Kind:  domain.ResultPolicySummary,
			PolicySummary: &domain.PolicySummary{
				PolicyID: trigger.policyID,
				Title:    policyTitle(trigger.policyID),
				Content:  content,
			},
			Timestamp: time.Now(),
		}, nil
	}

	return a.answerFromSearch(ctx, question)
}

func (a *PolicyAgent) answerFromSearch(ctx context.Context, question string) (domain.AgentResult, error) {
	if a.searcher == nil {
		return domain.AgentResult{}, domain.ErrSearchUnavailable
	}

	chunks, err := a.searcher.Search(ctx, a.collection, question, policySearchTopK)
	if err != nil {
		return domain.AgentResult{}, fmt.Errorf("searching policies: %w", err)
	}

	result := domain.AgentResult{
		Agent:     domain.AgentPolicy,
		Kind:      domain.ResultPolicyAnswer,
		Timestamp: time.Now(),
	}

	if len(chunks) == 0 {
		result.PolicyAnswer = &domain.PolicyQueryAnswer{
			Question: question,
			Answer:   noRelevantPolicyAnswer,
		}
		return result, nil
	}

	answer, err := a.synthesize(ctx, question, chunks)
	if err != nil {
		return domain.AgentResult{}, err
	}

	result.PolicyAnswer = &domain.PolicyQueryAnswer{
		Question: question,
		Answer:   answer,
		Sources:  chunks,
	}
	return result, nil
}

func (a *PolicyAgent) synthesize(ctx context.Context, question string, chunks []domain.RetrievedChunk) (string, error) {
	if a.generator == nil {
		logger.Warn("no text generator configured, returning raw policy excerpt")
		return chunks[0].Content, nil
	}

	var b strings.Builder
	for i, chunk := range chunks {
		fmt.Fprintf(&b, "[Excerpt %d]\n%s\n\n", i+1, chunk.Content)
	}

	system := "You are a helpful policy assistant for a customer support team. Answer the question using only the provided policy excerpts. Be concise and accurate. If the excerpts do not cover the question, say so."
	user := fmt.Sprintf("Policy excerpts:\n\n%s---\n\nQuestion: %s", b.String(), question)

	answer, err := a.generator.Generate(ctx, system, user)
	if err != nil {
		return "", fmt.Errorf("generating policy answer: %w", err)
	}
	return answer, nil
}

// policyTitle turns a policy ID like "terms_of_service" into a display
// title like "Terms Of Service".
func policyTitle(policyID string) string {
	words := strings.Split(policyID, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
