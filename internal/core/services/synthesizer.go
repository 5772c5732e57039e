package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/deskmate/internal/core/domain"
)

const assistantSystemPrompt = `You are a helpful customer support assistant. You have access to two kinds of information: customer database records and company policy documents. Answer the customer's question using only the numbered sources provided. Combine information from multiple sources when relevant. Do not invent facts that are not in the sources. Write in clear, friendly prose without citing source numbers.`

// citationMarker matches inline citations like "[Source 2]" or
// "(source 1)" that the generator sometimes emits despite instructions.
var citationMarker = regexp.MustCompile(`(?i)\s*[\[\(]source\s+[^\])]*[\])]`)

// synthesize asks the generator for an answer over the context blocks
// and strips any leaked citation markers.
func (a *Assistant) synthesize(ctx context.Context, question string, blocks []string) (string, error) {
	if a.generator == nil {
		return "", domain.ErrLLMUnavailable
	}

	prompt := fmt.Sprintf(
		"Available Information:\n\n%s\n\n---\n\nCustomer Question: %s\n\nPlease provide a comprehensive answer using any relevant information from the sources above.",
		strings.Join(blocks, "\n\n"), question)

	text, err := a.generator.Generate(ctx, assistantSystemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}

	return strings.TrimSpace(citationMarker.ReplaceAllString(text, "")), nil
}
