package commands

import (
	"context"
	"log/slog"

	"rentens-market/internal/domain/asset"
	"rentens-market/internal/domain/event"
	"rentens-market/internal/pkg/clock"
	"rentens-market/internal/usecase/shared"

	"github.com/google/uuid"
)

// OwnershipHook observes control transfers that happen in the registry.
type OwnershipHook func(ctx context.Context, id asset.ID, from, to uuid.UUID)

// NewOwnershipHook invalidates marketplace state when a name changes hands
// outside the marketplace: the listing no longer reflects the controller and
// a pending extension offer was made against the old owner. Transfers to or
// from the escrow principal are the marketplace's own custody moves and are
// left alone.
func NewOwnershipHook(store MarketStore, escrow uuid.UUID, clk clock.Clock) OwnershipHook {
	return func(ctx context.Context, id asset.ID, from, to uuid.UUID) {
		if from == escrow || to == escrow {
			return
		}
		err := store.Update(id, func(st *shared.AssetState) ([]event.Event, error) {
			now := clk.Now()
			evts := make([]event.Event, 0, 2)
			if st.Listing.IsActive() {
				st.Listing = nil
				evts = append(evts, event.New(event.TypeListingCanceled, id, from, now))
			}
			if st.Offer.IsPending() {
				st.Offer.Invalidate()
				evts = append(evts, event.New(event.TypeExtensionInvalidated, id, from, now))
			}
			return evts, nil
		})
		if err != nil {
			slog.Error("ownership hook failed", "asset", id, "error", err)
		}
	}
}
