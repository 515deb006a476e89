// Package domain holds DTOs for quota http and service contracts
package domain

// Grant is the result of a reservation attempt
// Remaining always reflects the post-call balance, unchanged on refusal
type Grant struct {
	OK        bool `json:"ok"`
	Remaining int  `json:"remaining"`
}

// BalanceQuery asks for the current credit balance of a domain
type BalanceQuery struct {
	Domain string `json:"domain" validate:"required,min=3,max=255"`
}

// BalanceRow is the current ledger view for a domain
type BalanceRow struct {
	DomainKey string `json:"domain_key"`
	Balance   int    `json:"balance"`
}
