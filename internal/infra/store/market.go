// Package store holds the marketplace's authoritative in-memory state. All
// mutation goes through Update, which serializes work per asset and commits
// only complete transitions.
package store

import (
	"log/slog"
	"sync"

	"rentens-market/internal/domain/asset"
	"rentens-market/internal/domain/event"
	"rentens-market/internal/domain/fee"
	"rentens-market/internal/domain/listing"
	"rentens-market/internal/usecase/shared"
)

const defaultEventWindow = 256

type entry struct {
	mu    sync.Mutex
	state shared.AssetState
}

type MarketStore struct {
	mu      sync.RWMutex // guards the entries map and the event log
	entries map[asset.ID]*entry

	events      []event.Event
	eventWindow int

	policyMu sync.RWMutex
	policy   *fee.Policy

	slogger *slog.Logger
}

func NewMarketStore(initial *fee.Policy, slogger *slog.Logger) *MarketStore {
	return &MarketStore{
		entries:     make(map[asset.ID]*entry),
		eventWindow: defaultEventWindow,
		policy:      initial,
		slogger:     slogger,
	}
}

func (s *MarketStore) entryFor(id asset.ID) *entry {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.entries[id]; ok {
		return e
	}
	e = &entry{}
	s.entries[id] = e
	return e
}

// Update runs fn on a scratch copy of the asset's record under its exclusive
// lock. When fn returns nil the scratch replaces the record and the returned
// events are appended; any error discards the scratch entirely.
func (s *MarketStore) Update(id asset.ID, fn func(st *shared.AssetState) ([]event.Event, error)) error {
	e := s.entryFor(id)
	e.mu.Lock()
	defer e.mu.Unlock()

	scratch := e.state.Clone()
	evts, err := fn(&scratch)
	if err != nil {
		return err
	}
	e.state = scratch
	s.appendEvents(evts)
	return nil
}

// View returns a detached snapshot of the asset's record.
func (s *MarketStore) View(id asset.ID) shared.AssetState {
	e := s.entryFor(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

func (s *MarketStore) ActiveListings() []*listing.Listing {
	s.mu.RLock()
	ids := make([]asset.ID, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	listings := make([]*listing.Listing, 0, len(ids))
	for _, id := range ids {
		st := s.View(id)
		if st.Listing.IsActive() {
			listings = append(listings, st.Listing)
		}
	}
	return listings
}

func (s *MarketStore) FeePolicy() *fee.Policy {
	s.policyMu.RLock()
	defer s.policyMu.RUnlock()
	return s.policy
}

func (s *MarketStore) SetFeePolicy(p *fee.Policy, evt event.Event) {
	s.policyMu.Lock()
	s.policy = p
	s.policyMu.Unlock()
	s.appendEvents([]event.Event{evt})
}

// RecentEvents returns the newest events for the asset, most recent first.
// An empty id matches marketplace-wide events too.
func (s *MarketStore) RecentEvents(id asset.ID, limit int) []event.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = s.eventWindow
	}
	out := make([]event.Event, 0, limit)
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		if id == "" || s.events[i].Asset == id || s.events[i].Asset == "" {
			out = append(out, s.events[i])
		}
	}
	return out
}

func (s *MarketStore) appendEvents(evts []event.Event) {
	if len(evts) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, evt := range evts {
		s.slogger.Info("market event",
			"type", string(evt.Type),
			"asset", string(evt.Asset),
			"actor", evt.Actor.String(),
		)
		s.events = append(s.events, evt)
	}
	if over := len(s.events) - s.eventWindow; over > 0 {
		s.events = append(s.events[:0:0], s.events[over:]...)
	}
}
