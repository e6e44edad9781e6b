//go:build unit || e2e

package builder

import (
	"time"

	"rentens-market/internal/domain/asset"
	domlisting "rentens-market/internal/domain/listing"
	"rentens-market/internal/domain/money"
	reqdto "rentens-market/internal/handler/dto/request"
	"rentens-market/internal/usecase/queries"

	"github.com/google/uuid"
)

type ListingBuilder struct {
	Asset              string
	Owner              uuid.UUID
	MaxDurationSeconds int64
	DailyRateUnits     int64
	ExtensionsAllowed  bool
	CreatedAt          time.Time
}

func NewListingBuilder() *ListingBuilder {
	return &ListingBuilder{
		Asset:              "vault.eth",
		Owner:              uuid.New(),
		MaxDurationSeconds: 30 * 24 * 3600,
		DailyRateUnits:     100_000_000,
		ExtensionsAllowed:  true,
		CreatedAt:          time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *ListingBuilder) With(mutate func(*ListingBuilder)) *ListingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ListingBuilder) BuildDomain() (*domlisting.Listing, error) {
	return domlisting.New(
		asset.ID(b.Asset),
		b.Owner,
		domlisting.Terms{
			MaxDuration:       time.Duration(b.MaxDurationSeconds) * time.Second,
			DailyRate:         money.MustNew(b.DailyRateUnits),
			ExtensionsAllowed: b.ExtensionsAllowed,
		},
		b.CreatedAt,
	)
}

func (b *ListingBuilder) BuildCreateRequestDTO() reqdto.CreateListingRequest {
	return reqdto.CreateListingRequest{
		Asset:              b.Asset,
		MaxDurationSeconds: b.MaxDurationSeconds,
		DailyRateUnits:     b.DailyRateUnits,
		ExtensionsAllowed:  b.ExtensionsAllowed,
	}
}

func (b *ListingBuilder) BuildView() *queries.ListingView {
	return &queries.ListingView{
		Asset:              b.Asset,
		Owner:              b.Owner,
		MaxDurationSeconds: b.MaxDurationSeconds,
		DailyRateUnits:     b.DailyRateUnits,
		ExtensionsAllowed:  b.ExtensionsAllowed,
		CreatedAt:          b.CreatedAt,
	}
}
