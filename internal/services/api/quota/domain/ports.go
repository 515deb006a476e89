package domain

import "context"

// ServicePort is the interface implemented by the quota service
type ServicePort interface {
	// Reserve atomically debits amount credits for the domain
	// an insufficient balance refuses the grant without error
	Reserve(ctx context.Context, domain string, amount int) (Grant, error)

	// Refund credits amount back to the domain ledger
	Refund(ctx context.Context, domain string, amount int) (int, error)

	// Balance reads the current balance, lazily seeding the ledger
	Balance(ctx context.Context, domain string) (BalanceRow, error)
}
