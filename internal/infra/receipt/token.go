// Package receipt tracks the rental receipt token. One token exists per
// rented name; its holder is the current renter.
package receipt

import (
	"context"
	"log/slog"
	"sync"

	"rentens-market/internal/domain/asset"
	"rentens-market/internal/infra"

	"github.com/google/uuid"
)

type TokenRegistry struct {
	mu      sync.Mutex
	holders map[asset.ID]uuid.UUID
	slogger *slog.Logger
}

func NewTokenRegistry(slogger *slog.Logger) *TokenRegistry {
	return &TokenRegistry{
		holders: make(map[asset.ID]uuid.UUID),
		slogger: slogger,
	}
}

func (t *TokenRegistry) Mint(_ context.Context, id asset.ID, holder uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.holders[id]; exists {
		return infra.WrapInfraErr(t.slogger, infra.KindConflict, "receipt already minted", nil)
	}
	t.holders[id] = holder
	return nil
}

func (t *TokenRegistry) Burn(_ context.Context, id asset.ID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.holders[id]; !exists {
		return infra.WrapInfraErr(t.slogger, infra.KindNotFound, "no receipt for name", nil)
	}
	delete(t.holders, id)
	return nil
}

func (t *TokenRegistry) HolderOf(_ context.Context, id asset.ID) (uuid.UUID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	holder, exists := t.holders[id]
	if !exists {
		return uuid.Nil, infra.WrapInfraErr(t.slogger, infra.KindNotFound, "no receipt for name", nil)
	}
	return holder, nil
}

func (t *TokenRegistry) Transfer(_ context.Context, id asset.ID, from, to uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	holder, exists := t.holders[id]
	if !exists {
		return infra.WrapInfraErr(t.slogger, infra.KindNotFound, "no receipt for name", nil)
	}
	if holder != from {
		return infra.WrapInfraErr(t.slogger, infra.KindConflict, "transfer from non-holder", nil)
	}
	t.holders[id] = to
	return nil
}
