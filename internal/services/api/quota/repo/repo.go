// Package repo provides the quota ledger persistence implementations
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"

	"resumeranker/internal/modkit/repokit"
)

// Repo is the ledger persistence surface used by the service layer
// Debit must be atomic: the balance check and subtraction are one step
type Repo interface {
	// Ensure creates the ledger row for key with the given allotment if absent
	Ensure(ctx context.Context, key string, allotment int) error

	// Debit subtracts amount when the balance covers it
	// returns the resulting balance and whether the debit was applied
	Debit(ctx context.Context, key string, amount int) (remaining int, ok bool, err error)

	// Credit adds amount back and returns the resulting balance
	Credit(ctx context.Context, key string, amount int) (int, error)

	// Balance reads the current balance for key
	Balance(ctx context.Context, key string) (int, error)
}

type (
	// PG is a Postgres implementation of the quota repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Ensure seeds the ledger lazily, existing rows are left untouched
func (r *queries) Ensure(ctx context.Context, key string, allotment int) error {
	const sql = `
		INSERT INTO quota_ledgers (domain_key, balance, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (domain_key) DO NOTHING
	`
	_, err := r.q.Exec(ctx, sql, key, allotment)
	return err
}

// Debit runs the check-and-subtract as a single statement so concurrent
// reservations against the same key can never both pass a stale check
func (r *queries) Debit(ctx context.Context, key string, amount int) (int, bool, error) {
	const sql = `
		UPDATE quota_ledgers
		   SET balance = balance - $2, updated_at = NOW()
		 WHERE domain_key = $1 AND balance >= $2
		RETURNING balance
	`
	var remaining int
	if err := r.q.QueryRow(ctx, sql, key, amount).Scan(&remaining); err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			// refused, report the untouched balance
			bal, berr := r.Balance(ctx, key)
			return bal, false, berr
		}
		return 0, false, err
	}
	return remaining, true, nil
}

// Credit restores amount to the ledger
func (r *queries) Credit(ctx context.Context, key string, amount int) (int, error) {
	const sql = `
		UPDATE quota_ledgers
		   SET balance = balance + $2, updated_at = NOW()
		 WHERE domain_key = $1
		RETURNING balance
	`
	var remaining int
	if err := r.q.QueryRow(ctx, sql, key, amount).Scan(&remaining); err != nil {
		return 0, err
	}
	return remaining, nil
}

// Balance reads the current balance for key
func (r *queries) Balance(ctx context.Context, key string) (int, error) {
	var bal int
	err := r.q.QueryRow(ctx, `SELECT balance FROM quota_ledgers WHERE domain_key = $1`, key).Scan(&bal)
	return bal, err
}
