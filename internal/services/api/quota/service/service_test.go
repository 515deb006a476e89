package service

import (
	"context"
	"sync"
	"testing"

	perr "resumeranker/internal/platform/errors"
	"resumeranker/internal/services/api/quota/repo"
	screendom "resumeranker/internal/services/api/screening/domain"
)

func newTestSvc() *Svc {
	tiers := screendom.ParseTierTable(
		[]string{"startitnow.co.in:3:500"},
		screendom.Tier{OrgID: 2, Allotment: 100},
	)
	return New(repo.NewMemory(), Options{Allot: tiers.Allot})
}

func TestReserve_Table(t *testing.T) {
	tests := []struct {
		name      string
		domain    string
		amount    int
		wantOK    bool
		remaining int
	}{
		{
			name:      "partner domain gets 500 and debits per resume",
			domain:    "startitnow.co.in",
			amount:    3,
			wantOK:    true,
			remaining: 497,
		},
		{
			name:      "default domain gets 100",
			domain:    "example.com",
			amount:    10,
			wantOK:    true,
			remaining: 90,
		},
		{
			name:      "oversized request refused with balance unchanged",
			domain:    "fresh.io",
			amount:    600,
			wantOK:    false,
			remaining: 100,
		},
		{
			// runs after the example.com row above, sharing its ledger
			name:      "mixed case domains share one ledger",
			domain:    "Example.COM",
			amount:    5,
			wantOK:    true,
			remaining: 85,
		},
	}

	s := newTestSvc()
	ctx := context.Background()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := s.Reserve(ctx, tc.domain, tc.amount)
			if err != nil {
				t.Fatalf("reserve: %v", err)
			}
			if g.OK != tc.wantOK || g.Remaining != tc.remaining {
				t.Fatalf("grant = %+v, want ok=%v remaining=%d", g, tc.wantOK, tc.remaining)
			}
		})
	}
}

func TestReserve_InvalidInputs(t *testing.T) {
	s := newTestSvc()
	ctx := context.Background()

	if _, err := s.Reserve(ctx, "example.com", 0); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("zero amount: got %v", err)
	}
	if _, err := s.Reserve(ctx, "   ", 1); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("blank domain: got %v", err)
	}
}

func TestRefund_RestoresBalance(t *testing.T) {
	s := newTestSvc()
	ctx := context.Background()

	if _, err := s.Reserve(ctx, "example.com", 30); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	remaining, err := s.Refund(ctx, "example.com", 30)
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if remaining != 100 {
		t.Fatalf("remaining = %d, want 100", remaining)
	}
}

func TestBalance_SeedsLazily(t *testing.T) {
	s := newTestSvc()
	row, err := s.Balance(context.Background(), "startitnow.co.in")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if row.DomainKey != "startitnow_co_in" || row.Balance != 500 {
		t.Fatalf("row = %+v", row)
	}
}

// concurrent single-credit reservations against a 50 credit ledger
// exactly 50 must win and the balance must end at zero, never negative
func TestReserve_ConcurrentNoOversell(t *testing.T) {
	tiers := screendom.ParseTierTable(nil, screendom.Tier{OrgID: 2, Allotment: 50})
	s := New(repo.NewMemory(), Options{Allot: tiers.Allot})
	ctx := context.Background()

	const workers = 200
	var wg sync.WaitGroup
	granted := make(chan struct{}, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, err := s.Reserve(ctx, "busy.example.com", 1)
			if err != nil {
				t.Errorf("reserve: %v", err)
				return
			}
			if g.Remaining < 0 {
				t.Errorf("negative balance observed: %d", g.Remaining)
			}
			if g.OK {
				granted <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(granted)

	wins := 0
	for range granted {
		wins++
	}
	if wins != 50 {
		t.Fatalf("granted = %d, want exactly 50", wins)
	}

	row, err := s.Balance(ctx, "busy.example.com")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if row.Balance != 0 {
		t.Fatalf("final balance = %d, want 0", row.Balance)
	}
}
