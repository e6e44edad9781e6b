// Package shared holds the state record the commands and queries layers
// exchange with the market store.
package shared

import (
	"rentens-market/internal/domain/extension"
	"rentens-market/internal/domain/listing"
	"rentens-market/internal/domain/money"
	"rentens-market/internal/domain/rental"

	"github.com/google/uuid"
)

// AssetState is the per-asset listing/rental/offer triple, the unit of
// mutual exclusion. Any field may be nil when no such record exists.
type AssetState struct {
	Listing *listing.Listing
	Rental  *rental.Rental
	Offer   *extension.Offer
}

// Clone deep-copies the record so command scratch state and query snapshots
// never alias the store's live state.
func (s AssetState) Clone() AssetState {
	return AssetState{
		Listing: s.Listing.Clone(),
		Rental:  s.Rental.Clone(),
		Offer:   s.Offer.Clone(),
	}
}

// PaymentLeg is one transfer within an atomic settlement.
type PaymentLeg struct {
	From   uuid.UUID
	To     uuid.UUID
	Amount money.Amount
}
