// Package listing models an owner's open offer to rent out an asset.
// At most one listing is active per asset; checking the caller against the
// registry-reported owner is the usecase layer's job, the entity only enforces
// the shape of the terms.
package listing

import (
	"errors"
	"time"

	"rentens-market/internal/domain/asset"
	"rentens-market/internal/domain/money"

	"github.com/google/uuid"
)

const secondsPerDay int64 = 86400

var (
	ErrZeroDuration    = errors.New("max rental duration must be positive")
	ErrZeroRate        = errors.New("daily rate must be positive")
	ErrInvalidDuration = errors.New("requested duration must be positive")
)

// Terms are what the owner publishes: the longest rental they will grant,
// the price per day, and whether extension offers are welcome afterwards.
type Terms struct {
	MaxDuration       time.Duration
	DailyRate         money.Amount
	ExtensionsAllowed bool
}

func (t Terms) validate() error {
	if t.MaxDuration <= 0 {
		return ErrZeroDuration
	}
	if t.DailyRate.IsZero() {
		return ErrZeroRate
	}
	return nil
}

type Listing struct {
	asset     asset.ID
	owner     uuid.UUID
	terms     Terms
	createdAt time.Time
	active    bool
}

func New(assetID asset.ID, owner uuid.UUID, terms Terms, now time.Time) (*Listing, error) {
	if err := terms.validate(); err != nil {
		return nil, err
	}
	return &Listing{
		asset:     assetID,
		owner:     owner,
		terms:     terms,
		createdAt: now,
		active:    true,
	}, nil
}

// PriceFor prices a rental of the given duration pro rata against the daily
// rate, rounding down to the nearest unit.
func (l *Listing) PriceFor(duration time.Duration) (money.Amount, error) {
	seconds := int64(duration / time.Second)
	if seconds <= 0 {
		return money.Zero(), ErrInvalidDuration
	}
	return l.terms.DailyRate.MulDiv(seconds, secondsPerDay)
}

func (l *Listing) Deactivate() {
	l.active = false
}

func (l *Listing) IsActive() bool {
	return l != nil && l.active
}

func (l *Listing) Asset() asset.ID      { return l.asset }
func (l *Listing) Owner() uuid.UUID     { return l.owner }
func (l *Listing) Terms() Terms         { return l.terms }
func (l *Listing) CreatedAt() time.Time { return l.createdAt }

// Clone returns an independent copy so snapshot reads never alias live state.
func (l *Listing) Clone() *Listing {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}
