// Package service contains the quota ledger workflows
package service

import (
	"context"

	perr "resumeranker/internal/platform/errors"
	pstrings "resumeranker/internal/platform/strings"
	"resumeranker/internal/services/api/quota/domain"
	"resumeranker/internal/services/api/quota/repo"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// AllotFunc resolves the starting allotment for a ledger key
type AllotFunc func(domainKey string) int

// Options control service behavior
type Options struct {
	// Allot is required, typically the tier table's Allot method
	Allot AllotFunc
}

// Svc implements the service port
type Svc struct {
	repo  repo.Repo
	allot AllotFunc
}

// New constructs the service over any ledger backend
func New(r repo.Repo, opt Options) *Svc {
	if r == nil {
		panic("quota.Service requires a non nil Repo")
	}
	if opt.Allot == nil {
		panic("quota.Service requires a non nil AllotFunc")
	}
	return &Svc{repo: r, allot: opt.Allot}
}

// Reserve debits amount credits for the submitting domain
// an insufficient balance refuses the grant and leaves the balance untouched
func (s *Svc) Reserve(ctx context.Context, dom string, amount int) (domain.Grant, error) {
	if amount <= 0 {
		return domain.Grant{}, perr.Validationf("reservation amount must be positive")
	}
	key := pstrings.DomainKey(dom)
	if key == "" {
		return domain.Grant{}, perr.Validationf("domain must not be empty")
	}
	if err := s.repo.Ensure(ctx, key, s.allot(key)); err != nil {
		return domain.Grant{}, perr.Wrapf(err, perr.ErrorCodeDB, "quota ensure failed")
	}
	remaining, ok, err := s.repo.Debit(ctx, key, amount)
	if err != nil {
		return domain.Grant{}, perr.Wrapf(err, perr.ErrorCodeDB, "quota debit failed")
	}
	return domain.Grant{OK: ok, Remaining: remaining}, nil
}

// Refund credits amount back after a downstream stage failed
func (s *Svc) Refund(ctx context.Context, dom string, amount int) (int, error) {
	if amount <= 0 {
		return 0, perr.Validationf("refund amount must be positive")
	}
	key := pstrings.DomainKey(dom)
	remaining, err := s.repo.Credit(ctx, key, amount)
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeDB, "quota refund failed")
	}
	return remaining, nil
}

// Balance reads the current balance, seeding the ledger on first reference
func (s *Svc) Balance(ctx context.Context, dom string) (domain.BalanceRow, error) {
	key := pstrings.DomainKey(dom)
	if key == "" {
		return domain.BalanceRow{}, perr.Validationf("domain must not be empty")
	}
	if err := s.repo.Ensure(ctx, key, s.allot(key)); err != nil {
		return domain.BalanceRow{}, perr.Wrapf(err, perr.ErrorCodeDB, "quota ensure failed")
	}
	bal, err := s.repo.Balance(ctx, key)
	if err != nil {
		return domain.BalanceRow{}, perr.Wrapf(err, perr.ErrorCodeDB, "quota balance read failed")
	}
	return domain.BalanceRow{DomainKey: key, Balance: bal}, nil
}
