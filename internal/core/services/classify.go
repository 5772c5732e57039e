package services

import (
	"strings"

	"github.com/custodia-labs/deskmate/internal/core/domain"
)

// policyVocabulary and customerVocabulary are the keyword sets used to
// sort incoming questions into policy and customer queries. Matching is
// case-insensitive substring containment, so "refundable" matches
// "refund".
var (
	policyVocabulary = []string{
		"policy", "refund", "warranty", "shipping",
		"privacy", "terms", "guarantee", "coverage",
	}
	customerVocabulary = []string{
		"customer", "profile", "support ticket",
		"issue", "complaint", "order", "account",
	}
)

// Classify sorts a question into a policy, customer or ambiguous query.
// knownNames biases classification toward customer queries: a question
// mentioning a known customer name is a customer query even without any
// customer keyword. Classification is total, every input maps to
// exactly one kind.
func Classify(question string, knownNames []string) domain.Classification {
	lower := strings.ToLower(question)

	c := domain.Classification{
		PolicyMatch:   containsAny(lower, policyVocabulary),
		CustomerMatch: containsAny(lower, customerVocabulary),
	}

	for _, name := range knownNames {
		if name != "" && strings.Contains(lower, strings.ToLower(name)) {
			c.NameMatch = true
			c.MatchedName = name
			break
		}
	}

	switch {
	case c.CustomerMatch || c.NameMatch:
		c.Kind = domain.QueryCustomer
	case c.PolicyMatch:
		c.Kind = domain.QueryPolicy
	default:
		c.Kind = domain.QueryAmbiguous
	}
	return c
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
