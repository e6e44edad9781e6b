//go:build unit

package commands_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"rentens-market/internal/domain/asset"
	"rentens-market/internal/domain/fee"
	"rentens-market/internal/domain/money"
	"rentens-market/internal/infra/payments"
	"rentens-market/internal/infra/receipt"
	"rentens-market/internal/infra/registry"
	"rentens-market/internal/infra/store"
	"rentens-market/internal/pkg/clock"
	"rentens-market/internal/usecase/commands"
	"rentens-market/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	token     = int64(1_000_000_000)
	dailyRate = token / 10
	vault     = asset.ID("vault.eth")
)

type harness struct {
	store    *store.MarketStore
	registry *registry.InProcessRegistry
	ledger   *payments.AccountLedger
	receipts *receipt.TokenRegistry
	clock    *clock.MockClock

	listings   commands.ListingCommands
	rentals    commands.RentalCommands
	extensions commands.ExtensionCommands
	fees       commands.FeeCommands
	queries    queries.MarketQueries

	admin        uuid.UUID
	feeRecipient uuid.UUID
	escrow       uuid.UUID
	owner        uuid.UUID
	renter       uuid.UUID
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := &harness{
		admin:        uuid.New(),
		feeRecipient: uuid.New(),
		escrow:       uuid.New(),
		owner:        uuid.New(),
		renter:       uuid.New(),
	}
	h.clock = clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	policy, err := fee.NewPolicy(h.feeRecipient, 500)
	require.NoError(t, err)

	h.store = store.NewMarketStore(policy, logger)
	h.registry = registry.NewInProcessRegistry(logger)
	h.ledger = payments.NewAccountLedger(logger)
	h.receipts = receipt.NewTokenRegistry(logger)

	h.listings = commands.NewListingCommands(h.store, h.registry, h.clock)
	h.rentals = commands.NewRentalCommands(h.store, h.registry, h.ledger, h.receipts, h.escrow, h.clock)
	h.extensions = commands.NewExtensionCommands(h.store, h.registry, h.ledger, h.clock)
	h.fees = commands.NewFeeCommands(h.store, h.admin, h.clock)
	h.queries = queries.NewMarketQueries(h.store)

	h.registry.OnTransfer(registry.TransferHook(commands.NewOwnershipHook(h.store, h.escrow, h.clock)))

	h.registry.Register(vault, h.owner, h.clock.Now().Add(2*365*24*time.Hour))
	h.ledger.Deposit(h.renter, money.MustNew(token))

	return h
}

func (h *harness) listVault(t *testing.T) {
	t.Helper()
	_, err := h.listings.Create(context.Background(), h.owner, commands.CreateListingParams{
		Asset:             vault,
		MaxDuration:       30 * 24 * time.Hour,
		DailyRate:         dailyRate,
		ExtensionsAllowed: true,
	})
	require.NoError(t, err)
}

func (h *harness) rentVault(t *testing.T, duration time.Duration) {
	t.Helper()
	_, err := h.rentals.Rent(context.Background(), h.renter, commands.RentParams{
		Asset:    vault,
		Duration: duration,
		Payment:  token,
	})
	require.NoError(t, err)
}

func (h *harness) balance(p uuid.UUID) int64 {
	return h.ledger.BalanceOf(p).Units()
}

func TestCreateListing(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		h := newHarness(t)
		view, err := h.listings.Create(ctx, h.owner, commands.CreateListingParams{
			Asset:             vault,
			MaxDuration:       30 * 24 * time.Hour,
			DailyRate:         dailyRate,
			ExtensionsAllowed: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "vault.eth", view.Asset)
		assert.Equal(t, h.owner, view.Owner)
		assert.Equal(t, dailyRate, view.DailyRateUnits)

		got, err := h.queries.Listing(ctx, vault)
		require.NoError(t, err)
		assert.Equal(t, view.Owner, got.Owner)
	})

	t.Run("only the registry owner may list", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.listings.Create(ctx, h.renter, commands.CreateListingParams{
			Asset:       vault,
			MaxDuration: 24 * time.Hour,
			DailyRate:   dailyRate,
		})
		assert.ErrorIs(t, err, commands.ErrNotAssetOwner)
	})

	t.Run("one active listing per name", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		_, err := h.listings.Create(ctx, h.owner, commands.CreateListingParams{
			Asset:       vault,
			MaxDuration: 24 * time.Hour,
			DailyRate:   dailyRate,
		})
		assert.ErrorIs(t, err, commands.ErrListingAlreadyActive)
	})

	t.Run("cannot list while rented", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		h.rentVault(t, 24*time.Hour)

		_, err := h.listings.Create(ctx, h.owner, commands.CreateListingParams{
			Asset:       vault,
			MaxDuration: 24 * time.Hour,
			DailyRate:   dailyRate,
		})
		assert.ErrorIs(t, err, commands.ErrAlreadyRented)
	})

	t.Run("max duration bounded by registration", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.listings.Create(ctx, h.owner, commands.CreateListingParams{
			Asset:       vault,
			MaxDuration: 3 * 365 * 24 * time.Hour,
			DailyRate:   dailyRate,
		})
		assert.ErrorIs(t, err, commands.ErrRentalPeriodLongerThanRegistration)
	})

	t.Run("unknown name", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.listings.Create(ctx, h.owner, commands.CreateListingParams{
			Asset:       "missing.eth",
			MaxDuration: 24 * time.Hour,
			DailyRate:   dailyRate,
		})
		assert.ErrorIs(t, err, commands.ErrRegistryUnavailable)
	})
}

func TestCancelListing(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		require.NoError(t, h.listings.Cancel(ctx, h.owner, vault))

		_, err := h.queries.Listing(ctx, vault)
		assert.ErrorIs(t, err, queries.ErrListingNotFound)
	})

	t.Run("only the lister may cancel", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		assert.ErrorIs(t, h.listings.Cancel(ctx, h.renter, vault), commands.ErrNotListingOwner)
	})

	t.Run("no listing", func(t *testing.T) {
		h := newHarness(t)
		assert.ErrorIs(t, h.listings.Cancel(ctx, h.owner, vault), commands.ErrNoActiveListing)
	})
}

func TestRent(t *testing.T) {
	ctx := context.Background()

	t.Run("full settlement on success", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)

		view, err := h.rentals.Rent(ctx, h.renter, commands.RentParams{
			Asset:    vault,
			Duration: 24 * time.Hour,
			Payment:  token, // over-committed on purpose
		})
		require.NoError(t, err)
		assert.Equal(t, h.owner, view.Owner)
		assert.Equal(t, h.renter, view.Renter)
		assert.Equal(t, dailyRate, view.PricePaidUnits)

		// price 0.1 token: 95% to the owner, 5% marketplace fee, and the
		// over-commitment is never drawn
		assert.Equal(t, int64(95_000_000), h.balance(h.owner))
		assert.Equal(t, int64(5_000_000), h.balance(h.feeRecipient))
		assert.Equal(t, token-dailyRate, h.balance(h.renter))

		controller, err := h.registry.OwnerOf(ctx, vault)
		require.NoError(t, err)
		assert.Equal(t, h.escrow, controller)

		holder, err := h.receipts.HolderOf(ctx, vault)
		require.NoError(t, err)
		assert.Equal(t, h.renter, holder)

		_, err = h.queries.Listing(ctx, vault)
		assert.ErrorIs(t, err, queries.ErrListingNotFound)
	})

	t.Run("pro rata pricing for part days", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		h.rentVault(t, 12*time.Hour)
		assert.Equal(t, token-dailyRate/2, h.balance(h.renter))
	})

	t.Run("not listed", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.rentals.Rent(ctx, h.renter, commands.RentParams{Asset: vault, Duration: time.Hour, Payment: token})
		assert.ErrorIs(t, err, commands.ErrListingNotActive)
	})

	t.Run("owner cannot rent own name", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		_, err := h.rentals.Rent(ctx, h.owner, commands.RentParams{Asset: vault, Duration: time.Hour, Payment: token})
		assert.ErrorIs(t, err, commands.ErrSelfRental)
	})

	t.Run("duration above the listing maximum", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		_, err := h.rentals.Rent(ctx, h.renter, commands.RentParams{Asset: vault, Duration: 31 * 24 * time.Hour, Payment: token})
		assert.ErrorIs(t, err, commands.ErrExceedsMaxRentalDuration)
	})

	t.Run("registration runs out before the requested end", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)

		// two years minus twelve hours later the name has 12h of validity
		// left, well under the listed 30 day maximum
		h.clock.Add(2*365*24*time.Hour - 12*time.Hour)
		_, err := h.rentals.Rent(ctx, h.renter, commands.RentParams{Asset: vault, Duration: 24 * time.Hour, Payment: token})
		assert.ErrorIs(t, err, commands.ErrExceedsRegistrationPeriod)
	})

	t.Run("committed payment below price", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		_, err := h.rentals.Rent(ctx, h.renter, commands.RentParams{Asset: vault, Duration: 24 * time.Hour, Payment: dailyRate - 1})
		assert.ErrorIs(t, err, commands.ErrInsufficientPayment)
	})

	t.Run("settlement failure leaves no trace", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		pauper := uuid.New()

		_, err := h.rentals.Rent(ctx, pauper, commands.RentParams{Asset: vault, Duration: 24 * time.Hour, Payment: token})
		assert.ErrorIs(t, err, commands.ErrPaymentFailed)

		// listing survives, custody is back with the owner, no receipt
		_, err = h.queries.Listing(ctx, vault)
		assert.NoError(t, err)

		controller, err := h.registry.OwnerOf(ctx, vault)
		require.NoError(t, err)
		assert.Equal(t, h.owner, controller)

		_, err = h.receipts.HolderOf(ctx, vault)
		assert.Error(t, err)

		assert.Equal(t, int64(0), h.balance(h.owner))
		assert.Equal(t, int64(0), h.balance(h.feeRecipient))
	})

	t.Run("second rent is rejected", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		h.rentVault(t, 24*time.Hour)

		other := uuid.New()
		h.ledger.Deposit(other, money.MustNew(token))
		_, err := h.rentals.Rent(ctx, other, commands.RentParams{Asset: vault, Duration: time.Hour, Payment: token})
		assert.ErrorIs(t, err, commands.ErrListingNotActive)
	})

	t.Run("concurrent rents settle exactly once", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)

		const attackers = 8
		renters := make([]uuid.UUID, attackers)
		for i := range renters {
			renters[i] = uuid.New()
			h.ledger.Deposit(renters[i], money.MustNew(token))
		}

		var wg sync.WaitGroup
		errsCh := make(chan error, attackers)
		for _, r := range renters {
			wg.Add(1)
			go func(renter uuid.UUID) {
				defer wg.Done()
				_, err := h.rentals.Rent(ctx, renter, commands.RentParams{
					Asset:    vault,
					Duration: 24 * time.Hour,
					Payment:  token,
				})
				errsCh <- err
			}(r)
		}
		wg.Wait()
		close(errsCh)

		succeeded := 0
		for err := range errsCh {
			if err == nil {
				succeeded++
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, int64(95_000_000), h.balance(h.owner))
		assert.Equal(t, int64(5_000_000), h.balance(h.feeRecipient))
	})
}

func TestRegainAsOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("before expiry is refused", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		h.rentVault(t, 24*time.Hour)

		err := h.rentals.RegainAsOwner(ctx, h.owner, vault)
		assert.ErrorIs(t, err, commands.ErrRentalStillActive)
	})

	t.Run("after expiry returns custody and burns the receipt", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		h.rentVault(t, 24*time.Hour)

		h.clock.Add(24 * time.Hour)
		require.NoError(t, h.rentals.RegainAsOwner(ctx, h.owner, vault))

		controller, err := h.registry.OwnerOf(ctx, vault)
		require.NoError(t, err)
		assert.Equal(t, h.owner, controller)

		_, err = h.receipts.HolderOf(ctx, vault)
		assert.Error(t, err)

		_, err = h.queries.Rental(ctx, vault)
		assert.ErrorIs(t, err, queries.ErrRentalNotFound)
	})

	t.Run("second regain fails", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		h.rentVault(t, 24*time.Hour)
		h.clock.Add(48 * time.Hour)

		require.NoError(t, h.rentals.RegainAsOwner(ctx, h.owner, vault))
		assert.ErrorIs(t, h.rentals.RegainAsOwner(ctx, h.owner, vault), commands.ErrNoActiveRental)
	})

	t.Run("only the owner", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		h.rentVault(t, 24*time.Hour)
		h.clock.Add(48 * time.Hour)

		assert.ErrorIs(t, h.rentals.RegainAsOwner(ctx, h.renter, vault), commands.ErrNotRentalOwner)
	})

	t.Run("pending offer dies with the rental", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		h.rentVault(t, 24*time.Hour)

		_, err := h.extensions.Create(ctx, h.renter, commands.CreateOfferParams{
			Asset:       vault,
			ProposedEnd: h.clock.Now().Add(48 * time.Hour),
			Price:       dailyRate,
		})
		require.NoError(t, err)

		h.clock.Add(24 * time.Hour)
		require.NoError(t, h.rentals.RegainAsOwner(ctx, h.owner, vault))

		offer, err := h.queries.Offer(ctx, vault)
		require.NoError(t, err)
		assert.Equal(t, "INVALIDATED", offer.Status)
	})
}

func TestRegainAsRenter(t *testing.T) {
	ctx := context.Background()

	t.Run("early return, no refund", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		h.rentVault(t, 24*time.Hour)

		require.NoError(t, h.rentals.RegainAsRenter(ctx, h.renter, vault))

		controller, err := h.registry.OwnerOf(ctx, vault)
		require.NoError(t, err)
		assert.Equal(t, h.owner, controller)
		assert.Equal(t, token-dailyRate, h.balance(h.renter))
	})

	t.Run("only the renter", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		h.rentVault(t, 24*time.Hour)

		assert.ErrorIs(t, h.rentals.RegainAsRenter(ctx, h.owner, vault), commands.ErrNotRenter)
	})
}

func TestExtensionOffers(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) *harness {
		h := newHarness(t)
		h.listVault(t)
		h.rentVault(t, 24*time.Hour)
		return h
	}

	t.Run("renter proposes, owner accepts, renter pays", func(t *testing.T) {
		h := setup(t)
		end := h.clock.Now().Add(48 * time.Hour)

		_, err := h.extensions.Create(ctx, h.renter, commands.CreateOfferParams{
			Asset:       vault,
			ProposedEnd: end,
			Price:       dailyRate,
		})
		require.NoError(t, err)

		view, err := h.extensions.Accept(ctx, h.owner, commands.AcceptOfferParams{Asset: vault})
		require.NoError(t, err)
		assert.Equal(t, end, view.End)
		assert.Equal(t, 2*dailyRate, view.PricePaidUnits)

		// renter funds the extension, split like any payment
		assert.Equal(t, token-2*dailyRate, h.balance(h.renter))
		assert.Equal(t, int64(190_000_000), h.balance(h.owner))
		assert.Equal(t, int64(10_000_000), h.balance(h.feeRecipient))
	})

	t.Run("owner proposes, renter accepts and pays", func(t *testing.T) {
		h := setup(t)
		end := h.clock.Now().Add(48 * time.Hour)

		_, err := h.extensions.Create(ctx, h.owner, commands.CreateOfferParams{
			Asset:       vault,
			ProposedEnd: end,
			Price:       dailyRate,
		})
		require.NoError(t, err)

		_, err = h.extensions.Accept(ctx, h.renter, commands.AcceptOfferParams{Asset: vault, Payment: dailyRate})
		require.NoError(t, err)
		assert.Equal(t, token-2*dailyRate, h.balance(h.renter))
	})

	t.Run("renter acceptor must cover the price", func(t *testing.T) {
		h := setup(t)
		_, err := h.extensions.Create(ctx, h.owner, commands.CreateOfferParams{
			Asset:       vault,
			ProposedEnd: h.clock.Now().Add(48 * time.Hour),
			Price:       dailyRate,
		})
		require.NoError(t, err)

		_, err = h.extensions.Accept(ctx, h.renter, commands.AcceptOfferParams{Asset: vault, Payment: dailyRate - 1})
		assert.ErrorIs(t, err, commands.ErrInsufficientPayment)
	})

	t.Run("proposer cannot accept own offer", func(t *testing.T) {
		h := setup(t)
		_, err := h.extensions.Create(ctx, h.renter, commands.CreateOfferParams{
			Asset:       vault,
			ProposedEnd: h.clock.Now().Add(48 * time.Hour),
			Price:       dailyRate,
		})
		require.NoError(t, err)

		_, err = h.extensions.Accept(ctx, h.renter, commands.AcceptOfferParams{Asset: vault, Payment: dailyRate})
		assert.ErrorIs(t, err, commands.ErrNotCounterparty)
	})

	t.Run("newer offer supersedes the pending one", func(t *testing.T) {
		h := setup(t)
		_, err := h.extensions.Create(ctx, h.renter, commands.CreateOfferParams{
			Asset:       vault,
			ProposedEnd: h.clock.Now().Add(36 * time.Hour),
			Price:       dailyRate / 2,
		})
		require.NoError(t, err)

		second, err := h.extensions.Create(ctx, h.owner, commands.CreateOfferParams{
			Asset:       vault,
			ProposedEnd: h.clock.Now().Add(48 * time.Hour),
			Price:       dailyRate,
		})
		require.NoError(t, err)

		current, err := h.queries.Offer(ctx, vault)
		require.NoError(t, err)
		assert.Equal(t, second.ProposedEnd, current.ProposedEnd)
		assert.Equal(t, h.owner, current.Proposer)
	})

	t.Run("cancel is proposer-only", func(t *testing.T) {
		h := setup(t)
		_, err := h.extensions.Create(ctx, h.renter, commands.CreateOfferParams{
			Asset:       vault,
			ProposedEnd: h.clock.Now().Add(48 * time.Hour),
			Price:       dailyRate,
		})
		require.NoError(t, err)

		assert.ErrorIs(t, h.extensions.Cancel(ctx, h.owner, vault), commands.ErrNotOfferProposer)
		require.NoError(t, h.extensions.Cancel(ctx, h.renter, vault))

		_, err = h.extensions.Accept(ctx, h.owner, commands.AcceptOfferParams{Asset: vault})
		assert.ErrorIs(t, err, commands.ErrNoPendingOffer)
	})

	t.Run("end must extend the rental", func(t *testing.T) {
		h := setup(t)
		_, err := h.extensions.Create(ctx, h.renter, commands.CreateOfferParams{
			Asset:       vault,
			ProposedEnd: h.clock.Now().Add(12 * time.Hour),
			Price:       dailyRate,
		})
		assert.ErrorIs(t, err, commands.ErrInvalidExtensionEnd)
	})

	t.Run("end bounded by registration", func(t *testing.T) {
		h := setup(t)
		_, err := h.extensions.Create(ctx, h.renter, commands.CreateOfferParams{
			Asset:       vault,
			ProposedEnd: h.clock.Now().Add(3 * 365 * 24 * time.Hour),
			Price:       dailyRate,
		})
		assert.ErrorIs(t, err, commands.ErrExceedsRegistrationPeriod)
	})

	t.Run("outsiders cannot propose", func(t *testing.T) {
		h := setup(t)
		_, err := h.extensions.Create(ctx, uuid.New(), commands.CreateOfferParams{
			Asset:       vault,
			ProposedEnd: h.clock.Now().Add(48 * time.Hour),
			Price:       dailyRate,
		})
		assert.ErrorIs(t, err, commands.ErrNotRentalParty)
	})

	t.Run("listing must allow extensions", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.listings.Create(ctx, h.owner, commands.CreateListingParams{
			Asset:             vault,
			MaxDuration:       30 * 24 * time.Hour,
			DailyRate:         dailyRate,
			ExtensionsAllowed: false,
		})
		require.NoError(t, err)
		h.rentVault(t, 24*time.Hour)

		_, err = h.extensions.Create(ctx, h.renter, commands.CreateOfferParams{
			Asset:       vault,
			ProposedEnd: h.clock.Now().Add(48 * time.Hour),
			Price:       dailyRate,
		})
		assert.ErrorIs(t, err, commands.ErrExtensionsNotAllowed)
	})
}

func TestTransferReceipt(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the rental with the receipt", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		h.rentVault(t, 24*time.Hour)

		next := uuid.New()
		require.NoError(t, h.rentals.TransferReceipt(ctx, h.renter, vault, next))

		holder, err := h.receipts.HolderOf(ctx, vault)
		require.NoError(t, err)
		assert.Equal(t, next, holder)

		rentalView, err := h.queries.Rental(ctx, vault)
		require.NoError(t, err)
		assert.Equal(t, next, rentalView.Renter)
	})

	t.Run("invalidates a pending offer", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		h.rentVault(t, 24*time.Hour)

		_, err := h.extensions.Create(ctx, h.renter, commands.CreateOfferParams{
			Asset:       vault,
			ProposedEnd: h.clock.Now().Add(48 * time.Hour),
			Price:       dailyRate,
		})
		require.NoError(t, err)

		require.NoError(t, h.rentals.TransferReceipt(ctx, h.renter, vault, uuid.New()))

		offer, err := h.queries.Offer(ctx, vault)
		require.NoError(t, err)
		assert.Equal(t, "INVALIDATED", offer.Status)
	})

	t.Run("only the holder", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		h.rentVault(t, 24*time.Hour)

		err := h.rentals.TransferReceipt(ctx, h.owner, vault, uuid.New())
		assert.ErrorIs(t, err, commands.ErrNotReceiptHolder)
	})

	t.Run("rejects nil and self transferee", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		h.rentVault(t, 24*time.Hour)

		assert.ErrorIs(t, h.rentals.TransferReceipt(ctx, h.renter, vault, uuid.Nil), commands.ErrInvalidTransferee)
		assert.ErrorIs(t, h.rentals.TransferReceipt(ctx, h.renter, vault, h.renter), commands.ErrInvalidTransferee)
	})

	t.Run("rejects the rental owner as transferee", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		h.rentVault(t, 24*time.Hour)

		// owner == renter is never a valid rental record
		assert.ErrorIs(t, h.rentals.TransferReceipt(ctx, h.renter, vault, h.owner), commands.ErrInvalidTransferee)

		rentalView, err := h.queries.Rental(ctx, vault)
		require.NoError(t, err)
		assert.Equal(t, h.renter, rentalView.Renter)
	})
}

func TestOwnershipHook(t *testing.T) {
	ctx := context.Background()

	t.Run("external transfer kills the listing", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)

		buyer := uuid.New()
		require.NoError(t, h.registry.TransferControl(ctx, vault, h.owner, buyer))

		_, err := h.queries.Listing(ctx, vault)
		assert.ErrorIs(t, err, queries.ErrListingNotFound)
	})

	t.Run("marketplace custody moves are ignored", func(t *testing.T) {
		h := newHarness(t)
		h.listVault(t)
		h.rentVault(t, 24*time.Hour)

		// rent moved custody owner -> escrow; the rental must be intact
		_, err := h.queries.Rental(ctx, vault)
		assert.NoError(t, err)
	})
}

func TestSetFee(t *testing.T) {
	ctx := context.Background()

	t.Run("administrator only", func(t *testing.T) {
		h := newHarness(t)
		err := h.fees.SetFee(ctx, h.owner, commands.SetFeeParams{Recipient: h.feeRecipient, RateBasisPoints: 100})
		assert.ErrorIs(t, err, commands.ErrNotAdministrator)
	})

	t.Run("rate capped at five percent", func(t *testing.T) {
		h := newHarness(t)
		err := h.fees.SetFee(ctx, h.admin, commands.SetFeeParams{Recipient: h.feeRecipient, RateBasisPoints: 501})
		assert.ErrorIs(t, err, commands.ErrFeeTooHigh)
	})

	t.Run("royalty info tracks the update", func(t *testing.T) {
		h := newHarness(t)

		before, err := h.queries.Royalty(ctx, money.MustNew(token))
		require.NoError(t, err)
		assert.Equal(t, int64(50_000_000), before.FeeUnits)

		newRecipient := uuid.New()
		require.NoError(t, h.fees.SetFee(ctx, h.admin, commands.SetFeeParams{
			Recipient:       newRecipient,
			RateBasisPoints: 350,
		}))

		after, err := h.queries.Royalty(ctx, money.MustNew(token))
		require.NoError(t, err)
		assert.Equal(t, newRecipient, after.Recipient)
		assert.Equal(t, int64(35_000_000), after.FeeUnits)
	})

	t.Run("new rate applies to the next rental", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.fees.SetFee(ctx, h.admin, commands.SetFeeParams{
			Recipient:       h.feeRecipient,
			RateBasisPoints: 350,
		}))

		h.listVault(t)
		h.rentVault(t, 24*time.Hour)

		assert.Equal(t, int64(96_500_000), h.balance(h.owner))
		assert.Equal(t, int64(3_500_000), h.balance(h.feeRecipient))
	})

	t.Run("rate and recipient come from one policy snapshot", func(t *testing.T) {
		h := newHarness(t)
		// Flip between a 5% policy paying the default recipient and a 0%
		// policy naming someone else. The zero-rate policy charges nothing,
		// so its recipient must never earn a fee: a rental that mixed the old
		// rate with the new recipient would pay them.
		freeRecipient := uuid.New()

		const names = 32
		ids := make([]asset.ID, names)
		renters := make([]uuid.UUID, names)
		for i := range ids {
			ids[i] = asset.ID(fmt.Sprintf("name%d.eth", i))
			h.registry.Register(ids[i], h.owner, h.clock.Now().Add(2*365*24*time.Hour))
			_, err := h.listings.Create(ctx, h.owner, commands.CreateListingParams{
				Asset:       ids[i],
				MaxDuration: 30 * 24 * time.Hour,
				DailyRate:   dailyRate,
			})
			require.NoError(t, err)
			renters[i] = uuid.New()
			h.ledger.Deposit(renters[i], money.MustNew(token))
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 200; i++ {
				_ = h.fees.SetFee(ctx, h.admin, commands.SetFeeParams{Recipient: freeRecipient, RateBasisPoints: 0})
				_ = h.fees.SetFee(ctx, h.admin, commands.SetFeeParams{Recipient: h.feeRecipient, RateBasisPoints: 500})
			}
		}()

		var wg sync.WaitGroup
		for i := range ids {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := h.rentals.Rent(ctx, renters[i], commands.RentParams{
					Asset:    ids[i],
					Duration: 24 * time.Hour,
					Payment:  token,
				})
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()
		<-done

		assert.Equal(t, int64(0), h.balance(freeRecipient))
		// every rental drew exactly the price, split between owner and the
		// paid recipient
		assert.Equal(t, names*dailyRate, h.balance(h.owner)+h.balance(h.feeRecipient))
	})
}
