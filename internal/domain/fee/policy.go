// Package fee owns the marketplace cut of every payment. A single Policy is
// active at a time; only the administrator may replace it and the rate can
// never exceed the hard ceiling.
package fee

import (
	"errors"

	"rentens-market/internal/domain/money"

	"github.com/google/uuid"
)

const (
	// MaxRateBasisPoints caps the marketplace fee at 5%.
	MaxRateBasisPoints int32 = 500

	basisPointDenominator int64 = 10000
)

var (
	ErrRateTooHigh  = errors.New("fee rate exceeds ceiling")
	ErrNegativeRate = errors.New("fee rate cannot be negative")
	ErrNoRecipient  = errors.New("fee recipient must be set")
)

// Policy is immutable; setFee swaps in a freshly validated one, so a rate
// above the ceiling can never be observed.
type Policy struct {
	recipient uuid.UUID
	rateBps   int32
}

func NewPolicy(recipient uuid.UUID, rateBasisPoints int32) (*Policy, error) {
	if recipient == uuid.Nil {
		return nil, ErrNoRecipient
	}
	if rateBasisPoints < 0 {
		return nil, ErrNegativeRate
	}
	if rateBasisPoints > MaxRateBasisPoints {
		return nil, ErrRateTooHigh
	}
	return &Policy{recipient: recipient, rateBps: rateBasisPoints}, nil
}

func (p *Policy) Recipient() uuid.UUID {
	return p.recipient
}

func (p *Policy) RateBasisPoints() int32 {
	return p.rateBps
}

// Split divides payment into the owner's share and the marketplace fee.
// feeAmount = payment * rate / 10000 rounded down, ownerAmount the remainder,
// so the two always sum to the payment exactly.
func (p *Policy) Split(payment money.Amount) (ownerAmount, feeAmount money.Amount) {
	if p.rateBps == 0 {
		return payment, money.Zero()
	}
	// rate <= 500 bps keeps the chunked product far below overflow.
	feeAmount, _ = payment.MulDiv(int64(p.rateBps), basisPointDenominator)
	ownerAmount, _ = payment.Sub(feeAmount)
	return ownerAmount, feeAmount
}

// RoyaltyInfo reports recipient and fee for a hypothetical sale price at the
// current rate. Pure introspection, no state is touched.
func (p *Policy) RoyaltyInfo(salePrice money.Amount) (uuid.UUID, money.Amount) {
	_, feeAmount := p.Split(salePrice)
	return p.recipient, feeAmount
}
