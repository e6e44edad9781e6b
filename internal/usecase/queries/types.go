package queries

import (
	"time"

	"rentens-market/internal/domain/extension"
	"rentens-market/internal/domain/listing"
	"rentens-market/internal/domain/rental"

	"github.com/google/uuid"
)

type ListingView struct {
	Asset              string
	Owner              uuid.UUID
	MaxDurationSeconds int64
	DailyRateUnits     int64
	ExtensionsAllowed  bool
	CreatedAt          time.Time
}

type RentalView struct {
	Asset          string
	Owner          uuid.UUID
	Renter         uuid.UUID
	Start          time.Time
	End            time.Time
	PricePaidUnits int64
}

type OfferView struct {
	Asset       string
	Proposer    uuid.UUID
	ProposedEnd time.Time
	PriceUnits  int64
	Status      string
	CreatedAt   time.Time
}

type RoyaltyView struct {
	Recipient       uuid.UUID
	FeeUnits        int64
	RateBasisPoints int32
}

func NewListingView(l *listing.Listing) *ListingView {
	return &ListingView{
		Asset:              l.Asset().String(),
		Owner:              l.Owner(),
		MaxDurationSeconds: int64(l.Terms().MaxDuration / time.Second),
		DailyRateUnits:     l.Terms().DailyRate.Units(),
		ExtensionsAllowed:  l.Terms().ExtensionsAllowed,
		CreatedAt:          l.CreatedAt(),
	}
}

func NewRentalView(r *rental.Rental) *RentalView {
	return &RentalView{
		Asset:          r.Asset().String(),
		Owner:          r.Owner(),
		Renter:         r.Renter(),
		Start:          r.Start(),
		End:            r.End(),
		PricePaidUnits: r.PricePaid().Units(),
	}
}

func NewOfferView(o *extension.Offer) *OfferView {
	return &OfferView{
		Asset:       o.Asset().String(),
		Proposer:    o.Proposer(),
		ProposedEnd: o.ProposedEnd(),
		PriceUnits:  o.Price().Units(),
		Status:      string(o.Status()),
		CreatedAt:   o.CreatedAt(),
	}
}
