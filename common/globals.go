package common

const (
	InvoiceStatePending = "pending"
	InvoiceStateSettled = "settled"

	// MinInvoiceAmountMsat is the smallest invoice the payment provider will issue.
	MinInvoiceAmountMsat = 1000

	// BalanceFloorMsat is the lowest balance that still admits a billed call.
	BalanceFloorMsat = -1000

	BalanceHeader = "X-Lndb-Account-Balance"
)

// Scope is the capability level carried by a token.
type Scope string

const (
	ScopeAll           Scope = "all"
	ScopeReadOnly      Scope = "all/readonly"
	ScopeAccountCreate Scope = "account/create"

	// ScopeAnonymous is a pseudo-scope used in route gate definitions only,
	// it can never be assigned to a token.
	ScopeAnonymous Scope = "anonymous"
)

func (s Scope) Valid() bool {
	switch s {
	case ScopeAll, ScopeReadOnly, ScopeAccountCreate:
		return true
	}
	return false
}

// Satisfies reports whether a token with scope s passes a gate allowing the
// given scopes. ScopeAll is the super-scope and passes every gate.
func (s Scope) Satisfies(allowed ...Scope) bool {
	if s == ScopeAll {
		return true
	}
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
