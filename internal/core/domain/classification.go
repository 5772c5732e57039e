package domain

// QueryKind is the three-way routing decision for a question.
type QueryKind string

// Possible classifications.
const (
	// QueryPolicy indicates a company-policy question.
	QueryPolicy QueryKind = "policy"

	// QueryCustomer indicates a customer-record question.
	QueryCustomer QueryKind = "customer"

	// QueryAmbiguous indicates neither vocabulary matched.
	QueryAmbiguous QueryKind = "ambiguous"
)

// String returns the string representation.
func (k QueryKind) String() string {
	return string(k)
}

// Classification is the routing decision plus the keyword-match evidence
// that produced it. Derived per request, never stored.
type Classification struct {
	// Kind is the three-way decision.
	Kind QueryKind

	// PolicyMatch is true if any policy-vocabulary term matched.
	PolicyMatch bool

	// CustomerMatch is true if any customer-vocabulary term matched.
	CustomerMatch bool

	// NameMatch is true if a known customer name appeared in the text.
	NameMatch bool

	// MatchedName is the known customer name found, if any.
	MatchedName string
}
