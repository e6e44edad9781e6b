package commands

import (
	"context"
	"log/slog"
	"time"

	"rentens-market/internal/domain/asset"
	"rentens-market/internal/domain/event"
	"rentens-market/internal/domain/money"
	"rentens-market/internal/domain/rental"
	"rentens-market/internal/pkg/clock"
	"rentens-market/internal/pkg/errs"
	"rentens-market/internal/usecase/queries"
	"rentens-market/internal/usecase/shared"

	"github.com/google/uuid"
)

type RentParams struct {
	Asset    asset.ID
	Duration time.Duration
	// Payment is the amount the caller commits to the rental. Anything above
	// the pro-rata price is never drawn from their balance.
	Payment int64
}

type RentalCommands interface {
	Rent(ctx context.Context, actor uuid.UUID, params RentParams) (*queries.RentalView, error)
	RegainAsOwner(ctx context.Context, actor uuid.UUID, id asset.ID) error
	RegainAsRenter(ctx context.Context, actor uuid.UUID, id asset.ID) error
	TransferReceipt(ctx context.Context, actor uuid.UUID, id asset.ID, to uuid.UUID) error
}

type rentalCommandsImpl struct {
	store    MarketStore
	registry RegistryClient
	ledger   PaymentLedger
	receipts ReceiptIssuer
	escrow   uuid.UUID
	clock    clock.Clock
}

func NewRentalCommands(
	store MarketStore,
	registry RegistryClient,
	ledger PaymentLedger,
	receipts ReceiptIssuer,
	escrow uuid.UUID,
	clk clock.Clock,
) RentalCommands {
	return &rentalCommandsImpl{
		store:    store,
		registry: registry,
		ledger:   ledger,
		receipts: receipts,
		escrow:   escrow,
		clock:    clk,
	}
}

func (c *rentalCommandsImpl) Rent(ctx context.Context, actor uuid.UUID, params RentParams) (*queries.RentalView, error) {
	payment, err := money.New(params.Payment)
	if err != nil {
		return nil, errs.Mark(err, ErrInsufficientPayment)
	}

	var view *queries.RentalView
	err = c.store.Update(params.Asset, func(st *shared.AssetState) ([]event.Event, error) {
		l := st.Listing
		if !l.IsActive() {
			return nil, ErrListingNotActive
		}
		if st.Rental.IsActive() {
			return nil, ErrAlreadyRented
		}
		if actor == l.Owner() {
			return nil, ErrSelfRental
		}
		if params.Duration > l.Terms().MaxDuration {
			return nil, ErrExceedsMaxRentalDuration
		}

		price, err := l.PriceFor(params.Duration)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidTerms)
		}
		if payment.LessThan(price) {
			return nil, ErrInsufficientPayment
		}

		owner, err := c.registry.OwnerOf(ctx, params.Asset)
		if err != nil {
			return nil, errs.Mark(err, ErrRegistryUnavailable)
		}
		if owner != l.Owner() {
			return nil, ErrOwnerChanged
		}

		now := c.clock.Now()
		remaining, err := c.registry.RemainingValidity(ctx, params.Asset, now)
		if err != nil {
			return nil, errs.Mark(err, ErrRegistryUnavailable)
		}
		if params.Duration > remaining {
			return nil, ErrExceedsRegistrationPeriod
		}

		// Single snapshot of the fee policy: the split and the recipient must
		// come from the same configuration.
		policy := c.store.FeePolicy()
		ownerAmount, feeAmount := policy.Split(price)
		feeRecipient := policy.Recipient()

		// All local preconditions hold; collaborator effects start here.
		// Custody moves first so a payment failure leaves nothing to unwind
		// but the custody transfer itself.
		if err := c.registry.TransferControl(ctx, params.Asset, owner, c.escrow); err != nil {
			return nil, errs.Mark(err, ErrRegistryUnavailable)
		}

		legs := paymentLegs(actor, owner, ownerAmount, feeRecipient, feeAmount)
		if err := c.ledger.Settle(ctx, legs); err != nil {
			c.returnCustody(ctx, params.Asset, owner)
			return nil, errs.Mark(err, ErrPaymentFailed)
		}

		if err := c.receipts.Mint(ctx, params.Asset, actor); err != nil {
			if settleErr := c.ledger.Settle(ctx, reverseLegs(legs)); settleErr != nil {
				slog.Error("failed to refund after receipt mint failure",
					"asset", params.Asset, "error", settleErr)
			}
			c.returnCustody(ctx, params.Asset, owner)
			return nil, errs.Mark(err, ErrReceiptUnavailable)
		}

		r, err := rental.New(params.Asset, owner, actor, now, now.Add(params.Duration), price, l.Terms().ExtensionsAllowed)
		if err != nil {
			return nil, errs.Wrap(err, "building rental record")
		}

		st.Listing = nil // consumed
		st.Rental = r
		view = queries.NewRentalView(r)
		return []event.Event{
			event.New(event.TypeRented, params.Asset, actor, now).With(owner, price),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (c *rentalCommandsImpl) RegainAsOwner(ctx context.Context, actor uuid.UUID, id asset.ID) error {
	return c.store.Update(id, func(st *shared.AssetState) ([]event.Event, error) {
		r := st.Rental
		if !r.IsActive() {
			return nil, ErrNoActiveRental
		}
		if !r.IsOwner(actor) {
			return nil, ErrNotRentalOwner
		}
		now := c.clock.Now()
		if !r.HasExpired(now) {
			return nil, ErrRentalStillActive
		}
		return c.endRental(ctx, st, event.TypeControlRegainedByOwner, actor, now)
	})
}

// RegainAsRenter lets the renter hand control back at any time during the
// rental, or trigger the normal return once it has expired. There is no
// refund for early return.
func (c *rentalCommandsImpl) RegainAsRenter(ctx context.Context, actor uuid.UUID, id asset.ID) error {
	return c.store.Update(id, func(st *shared.AssetState) ([]event.Event, error) {
		r := st.Rental
		if !r.IsActive() {
			return nil, ErrNoActiveRental
		}
		if !r.IsRenter(actor) {
			return nil, ErrNotRenter
		}
		return c.endRental(ctx, st, event.TypeControlRegainedByRent, actor, c.clock.Now())
	})
}

// TransferReceipt moves the receipt token, which re-points the rental's
// renter and invalidates any pending extension offer (the negotiation was
// with the previous holder).
func (c *rentalCommandsImpl) TransferReceipt(ctx context.Context, actor uuid.UUID, id asset.ID, to uuid.UUID) error {
	if to == uuid.Nil || to == actor {
		return ErrInvalidTransferee
	}
	return c.store.Update(id, func(st *shared.AssetState) ([]event.Event, error) {
		r := st.Rental
		if !r.IsActive() {
			return nil, ErrNoActiveRental
		}
		if to == r.Owner() {
			// A rental where owner and renter coincide is never a valid record.
			return nil, ErrInvalidTransferee
		}
		holder, err := c.receipts.HolderOf(ctx, id)
		if err != nil {
			return nil, errs.Mark(err, ErrReceiptUnavailable)
		}
		if holder != actor {
			return nil, ErrNotReceiptHolder
		}

		if err := c.receipts.Transfer(ctx, id, actor, to); err != nil {
			return nil, errs.Mark(err, ErrReceiptUnavailable)
		}

		now := c.clock.Now()
		evts := make([]event.Event, 0, 2)
		if st.Offer.IsPending() {
			st.Offer.Invalidate()
			evts = append(evts, event.New(event.TypeExtensionInvalidated, id, actor, now))
		}
		r.ReassignRenter(to)
		evts = append(evts, event.New(event.TypeReceiptTransferred, id, actor, now).With(to, money.Zero()))
		return evts, nil
	})
}

// endRental reclaims custody, burns the receipt, invalidates a pending offer
// and drops the rental record. Shared by both return paths.
func (c *rentalCommandsImpl) endRental(ctx context.Context, st *shared.AssetState, t event.Type, actor uuid.UUID, now time.Time) ([]event.Event, error) {
	r := st.Rental

	if err := c.registry.TransferControl(ctx, r.Asset(), c.escrow, r.Owner()); err != nil {
		return nil, errs.Mark(err, ErrRegistryUnavailable)
	}
	if err := c.receipts.Burn(ctx, r.Asset()); err != nil {
		c.takeCustody(ctx, r.Asset(), r.Owner())
		return nil, errs.Mark(err, ErrReceiptUnavailable)
	}

	evts := make([]event.Event, 0, 2)
	if st.Offer.IsPending() {
		st.Offer.Invalidate()
		evts = append(evts, event.New(event.TypeExtensionInvalidated, r.Asset(), actor, now))
	}

	counterparty, _ := r.Counterparty(actor)
	st.Rental = nil
	evts = append(evts, event.New(t, r.Asset(), actor, now).With(counterparty, money.Zero()))
	return evts, nil
}

// returnCustody is compensation for a failed operation after custody already
// moved to escrow. Best effort: a failure here is logged, not surfaced, the
// caller already has the primary error.
func (c *rentalCommandsImpl) returnCustody(ctx context.Context, id asset.ID, owner uuid.UUID) {
	if err := c.registry.TransferControl(ctx, id, c.escrow, owner); err != nil {
		slog.Error("failed to return custody after aborted operation",
			"asset", id, "owner", owner, "error", err)
	}
}

func (c *rentalCommandsImpl) takeCustody(ctx context.Context, id asset.ID, owner uuid.UUID) {
	if err := c.registry.TransferControl(ctx, id, owner, c.escrow); err != nil {
		slog.Error("failed to restore escrow custody after aborted operation",
			"asset", id, "owner", owner, "error", err)
	}
}

func paymentLegs(payer, owner uuid.UUID, ownerAmount money.Amount, feeRecipient uuid.UUID, feeAmount money.Amount) []shared.PaymentLeg {
	legs := []shared.PaymentLeg{{From: payer, To: owner, Amount: ownerAmount}}
	if !feeAmount.IsZero() {
		legs = append(legs, shared.PaymentLeg{From: payer, To: feeRecipient, Amount: feeAmount})
	}
	return legs
}

func reverseLegs(legs []shared.PaymentLeg) []shared.PaymentLeg {
	reversed := make([]shared.PaymentLeg, len(legs))
	for i, leg := range legs {
		reversed[i] = shared.PaymentLeg{From: leg.To, To: leg.From, Amount: leg.Amount}
	}
	return reversed
}
