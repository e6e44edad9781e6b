package commands

import (
	"context"
	"time"

	"rentens-market/internal/domain/asset"
	"rentens-market/internal/domain/event"
	"rentens-market/internal/domain/extension"
	"rentens-market/internal/domain/money"
	"rentens-market/internal/pkg/clock"
	"rentens-market/internal/pkg/errs"
	"rentens-market/internal/usecase/queries"
	"rentens-market/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateOfferParams struct {
	Asset       asset.ID
	ProposedEnd time.Time
	Price       int64
}

type AcceptOfferParams struct {
	Asset asset.ID
	// Payment is only meaningful when the renter is the acceptor; the renter
	// always funds the extension regardless of who proposed it.
	Payment int64
}

type ExtensionCommands interface {
	Create(ctx context.Context, actor uuid.UUID, params CreateOfferParams) (*queries.OfferView, error)
	Cancel(ctx context.Context, actor uuid.UUID, id asset.ID) error
	Accept(ctx context.Context, actor uuid.UUID, params AcceptOfferParams) (*queries.RentalView, error)
}

type extensionCommandsImpl struct {
	store    MarketStore
	registry RegistryClient
	ledger   PaymentLedger
	clock    clock.Clock
}

func NewExtensionCommands(store MarketStore, registry RegistryClient, ledger PaymentLedger, clk clock.Clock) ExtensionCommands {
	return &extensionCommandsImpl{store: store, registry: registry, ledger: ledger, clock: clk}
}

// Create proposes an extension of an active rental. A newer proposal
// supersedes any pending one for the same asset.
func (c *extensionCommandsImpl) Create(ctx context.Context, actor uuid.UUID, params CreateOfferParams) (*queries.OfferView, error) {
	price, err := money.New(params.Price)
	if err != nil {
		return nil, errs.Mark(err, ErrInsufficientPayment)
	}

	var view *queries.OfferView
	err = c.store.Update(params.Asset, func(st *shared.AssetState) ([]event.Event, error) {
		r := st.Rental
		if !r.IsActive() {
			return nil, ErrNoActiveRental
		}
		if !r.IsParty(actor) {
			return nil, ErrNotRentalParty
		}
		if !r.ExtensionsAllowed() {
			return nil, ErrExtensionsNotAllowed
		}
		if !params.ProposedEnd.After(r.End()) {
			return nil, ErrInvalidExtensionEnd
		}

		now := c.clock.Now()
		remaining, err := c.registry.RemainingValidity(ctx, params.Asset, now)
		if err != nil {
			return nil, errs.Mark(err, ErrRegistryUnavailable)
		}
		if params.ProposedEnd.Sub(now) > remaining {
			return nil, ErrExceedsRegistrationPeriod
		}

		evts := make([]event.Event, 0, 2)
		if st.Offer.IsPending() {
			st.Offer.Supersede()
			evts = append(evts, event.New(event.TypeExtensionSuperseded, params.Asset, actor, now))
		}

		o, err := extension.New(params.Asset, actor, params.ProposedEnd, price, now)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidExtensionEnd)
		}
		st.Offer = o
		view = queries.NewOfferView(o)
		evts = append(evts, event.New(event.TypeExtensionOffered, params.Asset, actor, now).With(uuid.Nil, price))
		return evts, nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (c *extensionCommandsImpl) Cancel(_ context.Context, actor uuid.UUID, id asset.ID) error {
	return c.store.Update(id, func(st *shared.AssetState) ([]event.Event, error) {
		if !st.Offer.IsPending() {
			return nil, ErrNoPendingOffer
		}
		if !st.Offer.IsProposer(actor) {
			return nil, ErrNotOfferProposer
		}
		if err := st.Offer.Cancel(); err != nil {
			return nil, errs.Mark(err, ErrNoPendingOffer)
		}
		return []event.Event{
			event.New(event.TypeExtensionCanceled, id, actor, c.clock.Now()),
		}, nil
	})
}

// Accept is the counterparty's agreement: the rental's end time moves to the
// offered end and the renter pays the offered price, split like any other
// payment.
func (c *extensionCommandsImpl) Accept(ctx context.Context, actor uuid.UUID, params AcceptOfferParams) (*queries.RentalView, error) {
	payment, err := money.New(params.Payment)
	if err != nil {
		return nil, errs.Mark(err, ErrInsufficientPayment)
	}

	var view *queries.RentalView
	err = c.store.Update(params.Asset, func(st *shared.AssetState) ([]event.Event, error) {
		o := st.Offer
		if !o.IsPending() {
			return nil, ErrNoPendingOffer
		}
		r := st.Rental
		if !r.IsActive() {
			return nil, ErrNoActiveRental
		}
		if o.IsProposer(actor) || !r.IsParty(actor) {
			return nil, ErrNotCounterparty
		}
		if r.IsRenter(actor) && payment.LessThan(o.Price()) {
			return nil, ErrInsufficientPayment
		}
		if !o.ProposedEnd().After(r.End()) {
			return nil, ErrInvalidExtensionEnd
		}

		now := c.clock.Now()
		remaining, err := c.registry.RemainingValidity(ctx, params.Asset, now)
		if err != nil {
			return nil, errs.Mark(err, ErrRegistryUnavailable)
		}
		if o.ProposedEnd().Sub(now) > remaining {
			return nil, ErrExceedsRegistrationPeriod
		}

		// Single snapshot of the fee policy: the split and the recipient must
		// come from the same configuration.
		policy := c.store.FeePolicy()
		ownerAmount, feeAmount := policy.Split(o.Price())
		legs := paymentLegs(r.Renter(), r.Owner(), ownerAmount, policy.Recipient(), feeAmount)
		if err := c.ledger.Settle(ctx, legs); err != nil {
			return nil, errs.Mark(err, ErrPaymentFailed)
		}

		if err := r.ExtendTo(o.ProposedEnd()); err != nil {
			// Unreachable after the checks above; refund to keep accounts exact.
			if settleErr := c.ledger.Settle(ctx, reverseLegs(legs)); settleErr != nil {
				return nil, errs.Wrap(settleErr, "refund after failed extension")
			}
			return nil, errs.Mark(err, ErrInvalidExtensionEnd)
		}
		if err := r.AddPayment(o.Price()); err != nil {
			return nil, errs.Wrap(err, "accumulating extension payment")
		}
		if err := o.Accept(); err != nil {
			return nil, errs.Mark(err, ErrNoPendingOffer)
		}

		view = queries.NewRentalView(r)
		return []event.Event{
			event.New(event.TypeExtensionAccepted, params.Asset, actor, now).With(o.Proposer(), o.Price()),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
