// Package payments is an in-process account ledger. It exists so settlement
// semantics (all legs or none) can be exercised without an external payment
// rail; the usecase layer only sees the PaymentLedger port.
package payments

import (
	"context"
	"log/slog"
	"sync"

	"rentens-market/internal/domain/money"
	"rentens-market/internal/infra"
	"rentens-market/internal/usecase/shared"

	"github.com/google/uuid"
)

type AccountLedger struct {
	mu       sync.Mutex
	balances map[uuid.UUID]money.Amount
	slogger  *slog.Logger
}

func NewAccountLedger(slogger *slog.Logger) *AccountLedger {
	return &AccountLedger{
		balances: make(map[uuid.UUID]money.Amount),
		slogger:  slogger,
	}
}

// Deposit credits an account. Used for seeding and by tests; real funds
// ingress is out of scope for the ledger itself.
func (l *AccountLedger) Deposit(account uuid.UUID, amount money.Amount) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[account], _ = l.balances[account].Add(amount)
}

func (l *AccountLedger) BalanceOf(account uuid.UUID) money.Amount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[account]
}

func (l *AccountLedger) Pay(ctx context.Context, from, to uuid.UUID, amount money.Amount) error {
	return l.Settle(ctx, []shared.PaymentLeg{{From: from, To: to, Amount: amount}})
}

// Settle applies every leg or none. Legs are validated against the balances
// as they would stand mid-settlement, so earlier legs can fund later ones.
func (l *AccountLedger) Settle(_ context.Context, legs []shared.PaymentLeg) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make(map[uuid.UUID]money.Amount, len(legs)*2)
	for _, leg := range legs {
		next[leg.From] = l.balanceLocked(next, leg.From)
		next[leg.To] = l.balanceLocked(next, leg.To)
	}
	for _, leg := range legs {
		debited, err := next[leg.From].Sub(leg.Amount)
		if err != nil {
			return infra.WrapInfraErr(l.slogger, infra.KindInsufficientFunds,
				"insufficient balance for settlement leg", err)
		}
		credited, err := next[leg.To].Add(leg.Amount)
		if err != nil {
			return infra.WrapInfraErr(l.slogger, infra.KindConflict,
				"balance overflow on settlement leg", err)
		}
		next[leg.From] = debited
		next[leg.To] = credited
	}
	for account, balance := range next {
		l.balances[account] = balance
	}
	return nil
}

func (l *AccountLedger) balanceLocked(staged map[uuid.UUID]money.Amount, account uuid.UUID) money.Amount {
	if b, ok := staged[account]; ok {
		return b
	}
	return l.balances[account]
}
