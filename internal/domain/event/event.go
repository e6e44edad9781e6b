// Package event records marketplace state transitions for observability.
// One event is appended per transition; the store keeps a bounded recent
// window and the log is the audit trail for rentals that have ended.
package event

import (
	"time"

	"rentens-market/internal/domain/asset"
	"rentens-market/internal/domain/money"

	"github.com/google/uuid"
)

type Type string

const (
	TypeListingCreated         Type = "ListingCreated"
	TypeListingCanceled        Type = "ListingCanceled"
	TypeRented                 Type = "Rented"
	TypeExtensionOffered       Type = "ExtensionOffered"
	TypeExtensionCanceled      Type = "ExtensionCanceled"
	TypeExtensionAccepted      Type = "ExtensionAccepted"
	TypeExtensionSuperseded    Type = "ExtensionSuperseded"
	TypeExtensionInvalidated   Type = "ExtensionInvalidated"
	TypeControlRegainedByOwner Type = "ControlRegainedByOwner"
	TypeControlRegainedByRent  Type = "ControlRegainedByRenter"
	TypeReceiptTransferred     Type = "ReceiptTransferred"
	TypeFeeUpdated             Type = "FeeUpdated"
)

// Event carries the asset and parties involved in one transition. Asset is
// empty for marketplace-wide transitions (fee updates); Counterparty and
// Amount are zero when the transition has none.
type Event struct {
	Type         Type         `json:"type"`
	Asset        asset.ID     `json:"asset,omitempty"`
	Actor        uuid.UUID    `json:"actor"`
	Counterparty uuid.UUID    `json:"counterparty,omitempty"`
	Amount       money.Amount `json:"-"`
	AmountUnits  int64        `json:"amountUnits,omitempty"`
	At           time.Time    `json:"at"`
}

func New(t Type, assetID asset.ID, actor uuid.UUID, at time.Time) Event {
	return Event{Type: t, Asset: assetID, Actor: actor, At: at}
}

func (e Event) With(counterparty uuid.UUID, amount money.Amount) Event {
	e.Counterparty = counterparty
	e.Amount = amount
	e.AmountUnits = amount.Units()
	return e
}
