package commands

import (
	"context"
	"errors"

	"rentens-market/internal/domain/event"
	"rentens-market/internal/domain/fee"
	"rentens-market/internal/domain/money"
	"rentens-market/internal/pkg/clock"
	"rentens-market/internal/pkg/errs"

	"github.com/google/uuid"
)

type SetFeeParams struct {
	Recipient       uuid.UUID
	RateBasisPoints int32
}

type FeeCommands interface {
	SetFee(ctx context.Context, actor uuid.UUID, params SetFeeParams) error
}

type feeCommandsImpl struct {
	store         MarketStore
	administrator uuid.UUID
	clock         clock.Clock
}

func NewFeeCommands(store MarketStore, administrator uuid.UUID, clk clock.Clock) FeeCommands {
	return &feeCommandsImpl{store: store, administrator: administrator, clock: clk}
}

// SetFee replaces the protocol fee policy. Only the administrator may call
// it, and the rate is capped at fee.MaxRateBasisPoints.
func (c *feeCommandsImpl) SetFee(_ context.Context, actor uuid.UUID, params SetFeeParams) error {
	if actor != c.administrator {
		return ErrNotAdministrator
	}
	p, err := fee.NewPolicy(params.Recipient, params.RateBasisPoints)
	if err != nil {
		if errors.Is(err, fee.ErrRateTooHigh) {
			return errs.Mark(err, ErrFeeTooHigh)
		}
		return errs.Mark(err, ErrInvalidTerms)
	}
	evt := event.New(event.TypeFeeUpdated, "", actor, c.clock.Now()).
		With(params.Recipient, money.MustNew(int64(params.RateBasisPoints)))
	c.store.SetFeePolicy(p, evt)
	return nil
}
