package commands

import (
	"context"
	"time"

	"rentens-market/internal/domain/asset"
	"rentens-market/internal/domain/event"
	"rentens-market/internal/domain/fee"
	"rentens-market/internal/domain/money"
	"rentens-market/internal/usecase/shared"

	"github.com/google/uuid"
)

// RegistryClient is the adapter onto the external name registry. Calls may
// fail; every failure is surfaced to the caller, never masked.
type RegistryClient interface {
	OwnerOf(ctx context.Context, id asset.ID) (uuid.UUID, error)
	RemainingValidity(ctx context.Context, id asset.ID, at time.Time) (time.Duration, error)
	TransferControl(ctx context.Context, id asset.ID, from, to uuid.UUID) error
}

// PaymentLedger moves value between principals. Settle applies all legs or
// none of them.
type PaymentLedger interface {
	Pay(ctx context.Context, from, to uuid.UUID, amount money.Amount) error
	Settle(ctx context.Context, legs []shared.PaymentLeg) error
}

// ReceiptIssuer mints and burns the token whose holder is the current renter
// of an asset.
type ReceiptIssuer interface {
	Mint(ctx context.Context, id asset.ID, holder uuid.UUID) error
	Burn(ctx context.Context, id asset.ID) error
	HolderOf(ctx context.Context, id asset.ID) (uuid.UUID, error)
	Transfer(ctx context.Context, id asset.ID, from, to uuid.UUID) error
}

// MarketStore serializes all work on one asset: fn runs under the asset's
// exclusive lock, sees a scratch copy of the record, and its mutations are
// committed (with the returned events) only when fn returns nil.
type MarketStore interface {
	Update(id asset.ID, fn func(st *shared.AssetState) ([]event.Event, error)) error
	View(id asset.ID) shared.AssetState
	FeePolicy() *fee.Policy
	SetFeePolicy(p *fee.Policy, evt event.Event)
}
