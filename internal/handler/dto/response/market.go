package response

import (
	"time"

	"rentens-market/internal/domain/event"
	"rentens-market/internal/usecase/queries"

	"github.com/google/uuid"
)

type ListingResponse struct {
	Asset              string    `json:"asset"`
	Owner              uuid.UUID `json:"owner"`
	MaxDurationSeconds int64     `json:"maxDurationSeconds"`
	DailyRateUnits     int64     `json:"dailyRateUnits"`
	ExtensionsAllowed  bool      `json:"extensionsAllowed"`
	CreatedAt          time.Time `json:"createdAt"`
}

type RentalResponse struct {
	Asset          string    `json:"asset"`
	Owner          uuid.UUID `json:"owner"`
	Renter         uuid.UUID `json:"renter"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	PricePaidUnits int64     `json:"pricePaidUnits"`
}

type OfferResponse struct {
	Asset       string    `json:"asset"`
	Proposer    uuid.UUID `json:"proposer"`
	ProposedEnd time.Time `json:"proposedEnd"`
	PriceUnits  int64     `json:"priceUnits"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type RoyaltyResponse struct {
	Recipient       uuid.UUID `json:"recipient"`
	FeeUnits        int64     `json:"feeUnits"`
	RateBasisPoints int32     `json:"rateBasisPoints"`
}

type EventResponse struct {
	Type         string    `json:"type"`
	Asset        string    `json:"asset,omitempty"`
	Actor        uuid.UUID `json:"actor"`
	Counterparty uuid.UUID `json:"counterparty,omitempty"`
	AmountUnits  int64     `json:"amountUnits,omitempty"`
	At           time.Time `json:"at"`
}

func FromListingView(rm *queries.ListingView) *ListingResponse {
	return &ListingResponse{
		Asset:              rm.Asset,
		Owner:              rm.Owner,
		MaxDurationSeconds: rm.MaxDurationSeconds,
		DailyRateUnits:     rm.DailyRateUnits,
		ExtensionsAllowed:  rm.ExtensionsAllowed,
		CreatedAt:          rm.CreatedAt,
	}
}

func FromRentalView(rm *queries.RentalView) *RentalResponse {
	return &RentalResponse{
		Asset:          rm.Asset,
		Owner:          rm.Owner,
		Renter:         rm.Renter,
		Start:          rm.Start,
		End:            rm.End,
		PricePaidUnits: rm.PricePaidUnits,
	}
}

func FromOfferView(rm *queries.OfferView) *OfferResponse {
	return &OfferResponse{
		Asset:       rm.Asset,
		Proposer:    rm.Proposer,
		ProposedEnd: rm.ProposedEnd,
		PriceUnits:  rm.PriceUnits,
		Status:      rm.Status,
		CreatedAt:   rm.CreatedAt,
	}
}

func FromRoyaltyView(rm *queries.RoyaltyView) *RoyaltyResponse {
	return &RoyaltyResponse{
		Recipient:       rm.Recipient,
		FeeUnits:        rm.FeeUnits,
		RateBasisPoints: rm.RateBasisPoints,
	}
}

func FromEvent(e event.Event) *EventResponse {
	return &EventResponse{
		Type:         string(e.Type),
		Asset:        e.Asset.String(),
		Actor:        e.Actor,
		Counterparty: e.Counterparty,
		AmountUnits:  e.AmountUnits,
		At:           e.At,
	}
}
