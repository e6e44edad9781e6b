package commands

import (
	"context"
	"time"

	"rentens-market/internal/domain/asset"
	"rentens-market/internal/domain/event"
	"rentens-market/internal/domain/listing"
	"rentens-market/internal/domain/money"
	"rentens-market/internal/pkg/clock"
	"rentens-market/internal/pkg/errs"
	"rentens-market/internal/usecase/queries"
	"rentens-market/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateListingParams struct {
	Asset             asset.ID
	MaxDuration       time.Duration
	DailyRate         int64
	ExtensionsAllowed bool
}

type ListingCommands interface {
	Create(ctx context.Context, actor uuid.UUID, params CreateListingParams) (*queries.ListingView, error)
	Cancel(ctx context.Context, actor uuid.UUID, id asset.ID) error
}

type listingCommandsImpl struct {
	store    MarketStore
	registry RegistryClient
	clock    clock.Clock
}

func NewListingCommands(store MarketStore, registry RegistryClient, clk clock.Clock) ListingCommands {
	return &listingCommandsImpl{store: store, registry: registry, clock: clk}
}

func (c *listingCommandsImpl) Create(ctx context.Context, actor uuid.UUID, params CreateListingParams) (*queries.ListingView, error) {
	rate, err := money.New(params.DailyRate)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTerms)
	}

	var view *queries.ListingView
	err = c.store.Update(params.Asset, func(st *shared.AssetState) ([]event.Event, error) {
		if st.Listing.IsActive() {
			return nil, ErrListingAlreadyActive
		}
		// While rented the registry reports escrow as controller; reject with
		// the precise reason before the ownership check can obscure it.
		if st.Rental.IsActive() {
			return nil, ErrAlreadyRented
		}

		owner, err := c.registry.OwnerOf(ctx, params.Asset)
		if err != nil {
			return nil, errs.Mark(err, ErrRegistryUnavailable)
		}
		if owner != actor {
			return nil, ErrNotAssetOwner
		}

		now := c.clock.Now()
		remaining, err := c.registry.RemainingValidity(ctx, params.Asset, now)
		if err != nil {
			return nil, errs.Mark(err, ErrRegistryUnavailable)
		}
		if params.MaxDuration > remaining {
			return nil, ErrRentalPeriodLongerThanRegistration
		}

		l, err := listing.New(params.Asset, actor, listing.Terms{
			MaxDuration:       params.MaxDuration,
			DailyRate:         rate,
			ExtensionsAllowed: params.ExtensionsAllowed,
		}, now)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidTerms)
		}

		st.Listing = l
		view = queries.NewListingView(l)
		return []event.Event{
			event.New(event.TypeListingCreated, params.Asset, actor, now).With(uuid.Nil, rate),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (c *listingCommandsImpl) Cancel(_ context.Context, actor uuid.UUID, id asset.ID) error {
	return c.store.Update(id, func(st *shared.AssetState) ([]event.Event, error) {
		if !st.Listing.IsActive() {
			return nil, ErrNoActiveListing
		}
		if st.Listing.Owner() != actor {
			return nil, ErrNotListingOwner
		}

		st.Listing = nil
		return []event.Event{
			event.New(event.TypeListingCanceled, id, actor, c.clock.Now()),
		}, nil
	})
}
