// Package rental models an active, time-bounded delegation of an asset's
// control. One rental at most is active per asset; it is created when a
// listing is consumed and ends when either party returns control.
package rental

import (
	"errors"
	"time"

	"rentens-market/internal/domain/asset"
	"rentens-market/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrEndBeforeStart = errors.New("rental end must be after start")
	ErrEndNotExtended = errors.New("new end time must be after current end time")
	ErrSameParties    = errors.New("owner and renter must differ")
)

type Rental struct {
	id                uuid.UUID
	asset             asset.ID
	owner             uuid.UUID
	renter            uuid.UUID
	start             time.Time
	end               time.Time
	pricePaid         money.Amount
	extensionsAllowed bool
	active            bool
}

func New(
	assetID asset.ID,
	owner, renter uuid.UUID,
	start, end time.Time,
	pricePaid money.Amount,
	extensionsAllowed bool,
) (*Rental, error) {
	if !end.After(start) {
		return nil, ErrEndBeforeStart
	}
	if owner == renter {
		return nil, ErrSameParties
	}
	return &Rental{
		id:                uuid.New(),
		asset:             assetID,
		owner:             owner,
		renter:            renter,
		start:             start,
		end:               end,
		pricePaid:         pricePaid,
		extensionsAllowed: extensionsAllowed,
		active:            true,
	}, nil
}

func (r *Rental) HasExpired(now time.Time) bool {
	return !now.Before(r.end)
}

// ExtendTo moves the end time forward to an accepted extension offer's end.
// The end time only ever grows.
func (r *Rental) ExtendTo(newEnd time.Time) error {
	if !newEnd.After(r.end) {
		return ErrEndNotExtended
	}
	r.end = newEnd
	return nil
}

// AddPayment accumulates the price of an accepted extension into the total
// paid for this rental.
func (r *Rental) AddPayment(amount money.Amount) error {
	total, err := r.pricePaid.Add(amount)
	if err != nil {
		return err
	}
	r.pricePaid = total
	return nil
}

// ReassignRenter follows a receipt-token transfer: whoever holds the receipt
// is the current renter.
func (r *Rental) ReassignRenter(newRenter uuid.UUID) {
	r.renter = newRenter
}

func (r *Rental) Close() {
	r.active = false
}

func (r *Rental) IsActive() bool {
	return r != nil && r.active
}

func (r *Rental) IsOwner(p uuid.UUID) bool  { return r.owner == p }
func (r *Rental) IsRenter(p uuid.UUID) bool { return r.renter == p }

func (r *Rental) IsParty(p uuid.UUID) bool {
	return r.IsOwner(p) || r.IsRenter(p)
}

// Counterparty returns the other side of the rental relative to p.
func (r *Rental) Counterparty(p uuid.UUID) (uuid.UUID, bool) {
	switch p {
	case r.owner:
		return r.renter, true
	case r.renter:
		return r.owner, true
	default:
		return uuid.Nil, false
	}
}

func (r *Rental) ID() uuid.UUID           { return r.id }
func (r *Rental) Asset() asset.ID         { return r.asset }
func (r *Rental) Owner() uuid.UUID        { return r.owner }
func (r *Rental) Renter() uuid.UUID       { return r.renter }
func (r *Rental) Start() time.Time        { return r.start }
func (r *Rental) End() time.Time          { return r.end }
func (r *Rental) PricePaid() money.Amount { return r.pricePaid }
func (r *Rental) ExtensionsAllowed() bool { return r.extensionsAllowed }

func (r *Rental) Clone() *Rental {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
