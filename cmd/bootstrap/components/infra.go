package components

import (
	"log/slog"
	"time"

	"rentens-market/internal/domain/fee"
	"rentens-market/internal/domain/money"
	"rentens-market/internal/infra/payments"
	"rentens-market/internal/infra/receipt"
	"rentens-market/internal/infra/registry"
	"rentens-market/internal/infra/store"
	"rentens-market/internal/pkg/clock"
	"rentens-market/internal/pkg/config"
	"rentens-market/internal/usecase/commands"
	"rentens-market/internal/usecase/queries"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// Principals are the deployment-fixed identities: the escrow account that
// holds names during rentals and the administrator allowed to change fees.
type Principals struct {
	Administrator uuid.UUID
	FeeRecipient  uuid.UUID
	Escrow        uuid.UUID
}

var InfraModule = fx.Module("infra",
	fx.Provide(
		NewPrincipals,
		NewInitialFeePolicy,
		store.NewMarketStore,
		registry.NewInProcessRegistry,
		payments.NewAccountLedger,
		receipt.NewTokenRegistry,
		func(s *store.MarketStore) commands.MarketStore { return s },
		func(s *store.MarketStore) queries.StateReader { return s },
		func(r *registry.InProcessRegistry) commands.RegistryClient { return r },
		func(l *payments.AccountLedger) commands.PaymentLedger { return l },
		func(t *receipt.TokenRegistry) commands.ReceiptIssuer { return t },
	),
	fx.Invoke(
		registerOwnershipHook,
		seedDevData,
	),
)

func NewPrincipals(cfg config.Config) (Principals, error) {
	admin, err := cfg.Market.AdministratorID()
	if err != nil {
		return Principals{}, err
	}
	recipient, err := cfg.Market.FeeRecipientID()
	if err != nil {
		return Principals{}, err
	}
	escrow, err := cfg.Market.EscrowPrincipalID()
	if err != nil {
		return Principals{}, err
	}
	return Principals{
		Administrator: admin,
		FeeRecipient:  recipient,
		Escrow:        escrow,
	}, nil
}

func NewInitialFeePolicy(cfg config.Config, principals Principals) (*fee.Policy, error) {
	return fee.NewPolicy(principals.FeeRecipient, cfg.Market.FeeRateBasisPoints)
}

func registerOwnershipHook(
	reg *registry.InProcessRegistry,
	marketStore commands.MarketStore,
	principals Principals,
	clk clock.Clock,
) {
	hook := commands.NewOwnershipHook(marketStore, principals.Escrow, clk)
	reg.OnTransfer(registry.TransferHook(hook))
}

// seedDevData registers a few names and funds their principals so a fresh
// dev deployment is immediately usable.
func seedDevData(
	cfg config.Config,
	reg *registry.InProcessRegistry,
	ledger *payments.AccountLedger,
	clk clock.Clock,
	logger *slog.Logger,
) {
	if !cfg.Market.DevSeed {
		return
	}

	alice := uuid.MustParse("aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa")
	bob := uuid.MustParse("bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb")
	expiry := clk.Now().Add(2 * 365 * 24 * time.Hour)

	reg.Register("alice.eth", alice, expiry)
	reg.Register("bob.eth", bob, expiry)
	ledger.Deposit(alice, money.MustNew(1_000_000_000))
	ledger.Deposit(bob, money.MustNew(1_000_000_000))

	logger.Info("seeded dev registry and balances",
		"names", []string{"alice.eth", "bob.eth"},
		"expiry", expiry,
	)
}
