// Package registry adapts the external name registry. The in-process
// implementation tracks controller and registration expiry per name and
// notifies hooks of control transfers, which is all the marketplace needs
// from the real thing.
package registry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rentens-market/internal/domain/asset"
	"rentens-market/internal/infra"

	"github.com/google/uuid"
)

type record struct {
	controller uuid.UUID
	expiry     time.Time
}

type TransferHook func(ctx context.Context, id asset.ID, from, to uuid.UUID)

type InProcessRegistry struct {
	mu      sync.Mutex
	records map[asset.ID]record
	hooks   []TransferHook
	slogger *slog.Logger
}

func NewInProcessRegistry(slogger *slog.Logger) *InProcessRegistry {
	return &InProcessRegistry{
		records: make(map[asset.ID]record),
		slogger: slogger,
	}
}

// Register seeds or renews a name. Registration is the registry operator's
// concern; the marketplace only reads the result.
func (r *InProcessRegistry) Register(id asset.ID, controller uuid.UUID, expiry time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[id] = record{controller: controller, expiry: expiry}
}

// OnTransfer registers a hook called after every successful control
// transfer, outside the registry lock.
func (r *InProcessRegistry) OnTransfer(hook TransferHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, hook)
}

func (r *InProcessRegistry) OwnerOf(_ context.Context, id asset.ID) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return uuid.Nil, infra.WrapInfraErr(r.slogger, infra.KindNotFound, "name not registered", nil)
	}
	return rec.controller, nil
}

func (r *InProcessRegistry) RemainingValidity(_ context.Context, id asset.ID, at time.Time) (time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return 0, infra.WrapInfraErr(r.slogger, infra.KindNotFound, "name not registered", nil)
	}
	if !rec.expiry.After(at) {
		return 0, nil
	}
	return rec.expiry.Sub(at), nil
}

// TransferControl moves control of the name. The from principal must be the
// current controller.
func (r *InProcessRegistry) TransferControl(ctx context.Context, id asset.ID, from, to uuid.UUID) error {
	r.mu.Lock()
	rec, ok := r.records[id]
	if !ok {
		r.mu.Unlock()
		return infra.WrapInfraErr(r.slogger, infra.KindNotFound, "name not registered", nil)
	}
	if rec.controller != from {
		r.mu.Unlock()
		return infra.WrapInfraErr(r.slogger, infra.KindConflict, "transfer from non-controller", nil)
	}
	rec.controller = to
	r.records[id] = rec
	hooks := make([]TransferHook, len(r.hooks))
	copy(hooks, r.hooks)
	r.mu.Unlock()

	for _, hook := range hooks {
		hook(ctx, id, from, to)
	}
	return nil
}
