package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deskmate/internal/core/domain"
)

func TestPolicyAgent_TriggerReturnsSummary(t *testing.T) {
	policies := &mockPolicyStore{texts: map[string]string{
		"refund_policy": "Full refunds within 30 days.",
	}}
	searcher := &mockSearcher{}
	agent := NewPolicyAgent(policies, searcher, nil, DefaultPolicyCollection)

	result, err := agent.ProcessQuery(context.Background(), "What is your refund policy?")
	require.NoError(t, err)

	assert.Equal(t, domain.AgentPolicy, result.Agent)
	assert.Equal(t, domain.ResultPolicySummary, result.Kind)
	require.NotNil(t, result.PolicySummary)
	assert.Equal(t, "refund_policy", result.PolicySummary.PolicyID)
	assert.Equal(t, "Refund Policy", result.PolicySummary.Title)
	assert.Equal(t, "Full refunds within 30 days.", result.PolicySummary.Content)
	assert.Empty(t, searcher.lastQuery)
}

func TestPolicyAgent_FirstTriggerWins(t *testing.T) {
	policies := &mockPolicyStore{texts: map[string]string{
		"refund_policy":   "refund text",
		"warranty_policy": "warranty text",
	}}
	agent := NewPolicyAgent(policies, &mockSearcher{}, nil, DefaultPolicyCollection)

	result, err := agent.ProcessQuery(context.Background(), "warranty or refund?")
	require.NoError(t, err)
	require.NotNil(t, result.PolicySummary)
	assert.Equal(t, "refund_policy", result.PolicySummary.PolicyID)
}

func TestPolicyAgent_MissingDocumentFallsThroughToSearch(t *testing.T) {
	policies := &mockPolicyStore{texts: map[string]string{}}
	searcher := &mockSearcher{chunks: []domain.RetrievedChunk{
		{Content: "Refunds take 5 business days.", Similarity: 0.9},
	}}
	gen := &mockGenerator{response: "Refunds are processed in 5 business days."}
	agent := NewPolicyAgent(policies, searcher, gen, DefaultPolicyCollection)

	result, err := agent.ProcessQuery(context.Background(), "refund timing?")
	require.NoError(t, err)

	assert.Equal(t, domain.ResultPolicyAnswer, result.Kind)
	require.NotNil(t, result.PolicyAnswer)
	assert.Equal(t, "Refunds are processed in 5 business days.", result.PolicyAnswer.Answer)
	assert.Len(t, result.PolicyAnswer.Sources, 1)
	assert.Equal(t, 3, searcher.lastTopK)
	assert.Equal(t, 1, gen.calls)
}

func TestPolicyAgent_NoHitsFixedAnswer(t *testing.T) {
	agent := NewPolicyAgent(&mockPolicyStore{}, &mockSearcher{}, &mockGenerator{}, DefaultPolicyCollection)

	result, err := agent.ProcessQuery(context.Background(), "do you price match?")
	require.NoError(t, err)

	assert.Equal(t, domain.ResultPolicyAnswer, result.Kind)
	require.NotNil(t, result.PolicyAnswer)
	assert.Equal(t, noRelevantPolicyAnswer, result.PolicyAnswer.Answer)
	assert.Empty(t, result.PolicyAnswer.Sources)
}

func TestPolicyAgent_NilGeneratorDegradesToTopChunk(t *testing.T) {
	searcher := &mockSearcher{chunks: []domain.RetrievedChunk{
		{Content: "top chunk", Similarity: 0.8},
		{Content: "second chunk", Similarity: 0.5},
	}}
	agent := NewPolicyAgent(&mockPolicyStore{}, searcher, nil, DefaultPolicyCollection)

	result, err := agent.ProcessQuery(context.Background(), "how do exchanges work?")
	require.NoError(t, err)
	require.NotNil(t, result.PolicyAnswer)
	assert.Equal(t, "top chunk", result.PolicyAnswer.Answer)
}

func TestPolicyAgent_GenerationErrorPropagates(t *testing.T) {
	searcher := &mockSearcher{chunks: []domain.RetrievedChunk{{Content: "x", Similarity: 0.7}}}
	gen := &mockGenerator{err: errors.New("model overloaded")}
	agent := NewPolicyAgent(&mockPolicyStore{}, searcher, gen, DefaultPolicyCollection)

	_, err := agent.ProcessQuery(context.Background(), "exchange rules?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestPolicyAgent_SearchErrorPropagates(t *testing.T) {
	searcher := &mockSearcher{err: errors.New("index offline")}
	agent := NewPolicyAgent(&mockPolicyStore{}, searcher, nil, DefaultPolicyCollection)

	_, err := agent.ProcessQuery(context.Background(), "how do I pay?")
	require.Error(t, err)
}

func TestPolicyAgent_NilSearcher(t *testing.T) {
	agent := NewPolicyAgent(&mockPolicyStore{}, nil, nil, DefaultPolicyCollection)

	_, err := agent.ProcessQuery(context.Background(), "how do I pay?")
	require.ErrorIs(t, err, domain.ErrSearchUnavailable)
}

func TestPolicyTitle(t *testing.T) {
	assert.Equal(t, "Terms Of Service", policyTitle("terms_of_service"))
	assert.Equal(t, "Refund Policy", policyTitle("refund_policy"))
}
