package queries

import (
	"context"
	"errors"

	"rentens-market/internal/domain/asset"
	"rentens-market/internal/domain/event"
	"rentens-market/internal/domain/fee"
	"rentens-market/internal/domain/listing"
	"rentens-market/internal/domain/money"
	"rentens-market/internal/usecase/shared"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrRentalNotFound  = errors.New("rental not found")
	ErrOfferNotFound   = errors.New("extension offer not found")
)

// StateReader is the read side of the market store. Snapshots are detached
// copies; readers never observe a half-applied operation.
type StateReader interface {
	View(id asset.ID) shared.AssetState
	ActiveListings() []*listing.Listing
	FeePolicy() *fee.Policy
	RecentEvents(id asset.ID, limit int) []event.Event
}

type MarketQueries interface {
	Listing(ctx context.Context, id asset.ID) (*ListingView, error)
	ActiveListings(ctx context.Context) ([]*ListingView, error)
	Rental(ctx context.Context, id asset.ID) (*RentalView, error)
	Offer(ctx context.Context, id asset.ID) (*OfferView, error)
	Royalty(ctx context.Context, salePrice money.Amount) (*RoyaltyView, error)
	Events(ctx context.Context, id asset.ID, limit int) ([]event.Event, error)
}

type marketQueriesImpl struct {
	reader StateReader
}

func NewMarketQueries(reader StateReader) MarketQueries {
	return &marketQueriesImpl{reader: reader}
}

func (q *marketQueriesImpl) Listing(_ context.Context, id asset.ID) (*ListingView, error) {
	st := q.reader.View(id)
	if !st.Listing.IsActive() {
		return nil, ErrListingNotFound
	}
	return NewListingView(st.Listing), nil
}

func (q *marketQueriesImpl) ActiveListings(_ context.Context) ([]*ListingView, error) {
	listings := q.reader.ActiveListings()
	views := make([]*ListingView, len(listings))
	for i, l := range listings {
		views[i] = NewListingView(l)
	}
	return views, nil
}

func (q *marketQueriesImpl) Rental(_ context.Context, id asset.ID) (*RentalView, error) {
	st := q.reader.View(id)
	if !st.Rental.IsActive() {
		return nil, ErrRentalNotFound
	}
	return NewRentalView(st.Rental), nil
}

func (q *marketQueriesImpl) Offer(_ context.Context, id asset.ID) (*OfferView, error) {
	st := q.reader.View(id)
	if st.Offer == nil {
		return nil, ErrOfferNotFound
	}
	return NewOfferView(st.Offer), nil
}

func (q *marketQueriesImpl) Royalty(_ context.Context, salePrice money.Amount) (*RoyaltyView, error) {
	policy := q.reader.FeePolicy()
	recipient, feeAmount := policy.RoyaltyInfo(salePrice)
	return &RoyaltyView{
		Recipient:       recipient,
		FeeUnits:        feeAmount.Units(),
		RateBasisPoints: policy.RateBasisPoints(),
	}, nil
}

func (q *marketQueriesImpl) Events(_ context.Context, id asset.ID, limit int) ([]event.Event, error) {
	return q.reader.RecentEvents(id, limit), nil
}
