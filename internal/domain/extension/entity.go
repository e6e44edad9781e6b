// Package extension models proposals to lengthen an active rental. At most
// one offer is pending per asset; a newer offer supersedes the pending one,
// and ownership changes outside the marketplace invalidate it.
package extension

import (
	"errors"
	"time"

	"rentens-market/internal/domain/asset"
	"rentens-market/internal/domain/money"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending     Status = "PENDING"
	StatusAccepted    Status = "ACCEPTED"
	StatusCanceled    Status = "CANCELED"
	StatusSuperseded  Status = "SUPERSEDED"
	StatusInvalidated Status = "INVALIDATED"
)

var (
	ErrNotPending = errors.New("offer is not pending")
	ErrZeroEnd    = errors.New("proposed end time must be set")
)

type Offer struct {
	id          uuid.UUID
	asset       asset.ID
	proposer    uuid.UUID
	proposedEnd time.Time
	price       money.Amount
	status      Status
	createdAt   time.Time
}

func New(assetID asset.ID, proposer uuid.UUID, proposedEnd time.Time, price money.Amount, now time.Time) (*Offer, error) {
	if proposedEnd.IsZero() {
		return nil, ErrZeroEnd
	}
	return &Offer{
		id:          uuid.New(),
		asset:       assetID,
		proposer:    proposer,
		proposedEnd: proposedEnd,
		price:       price,
		status:      StatusPending,
		createdAt:   now,
	}, nil
}

func (o *Offer) Accept() error {
	if !o.IsPending() {
		return ErrNotPending
	}
	o.status = StatusAccepted
	return nil
}

func (o *Offer) Cancel() error {
	if !o.IsPending() {
		return ErrNotPending
	}
	o.status = StatusCanceled
	return nil
}

// Supersede retires a pending offer in favor of a newer one.
func (o *Offer) Supersede() {
	if o.IsPending() {
		o.status = StatusSuperseded
	}
}

// Invalidate is the ownership-change hook: any control transfer outside the
// marketplace's own operations kills a pending offer.
func (o *Offer) Invalidate() {
	if o.IsPending() {
		o.status = StatusInvalidated
	}
}

func (o *Offer) IsPending() bool {
	return o != nil && o.status == StatusPending
}

func (o *Offer) IsProposer(p uuid.UUID) bool { return o.proposer == p }

func (o *Offer) ID() uuid.UUID          { return o.id }
func (o *Offer) Asset() asset.ID        { return o.asset }
func (o *Offer) Proposer() uuid.UUID    { return o.proposer }
func (o *Offer) ProposedEnd() time.Time { return o.proposedEnd }
func (o *Offer) Price() money.Amount    { return o.price }
func (o *Offer) Status() Status         { return o.status }
func (o *Offer) CreatedAt() time.Time   { return o.createdAt }

func (o *Offer) Clone() *Offer {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}
