package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/howbusy/backend/internal/domain/entities"
	"github.com/howbusy/backend/internal/domain/providers"
	apperrors "github.com/howbusy/backend/pkg/errors"
)

// SnapshotCallback receives the full mirrored venue set after each applied
// snapshot. Delivery is at-least-once with no ordering guarantee between
// subscribers; a late subscriber sees only snapshots applied after it
// registered.
type SnapshotCallback func(venues []entities.Venue)

// VenueStore is the authoritative local mirror of the remote venue
// collection. It is the single read path for the other services and for
// presentation layers, and it never writes to the directory.
type VenueStore struct {
	directory providers.VenueDirectory

	mu     sync.RWMutex
	order  []string
	venues map[string]entities.Venue

	subMu       sync.Mutex
	subscribers map[int]SnapshotCallback
	nextSubID   int
}

// NewVenueStore creates an empty venue store mirroring the given directory.
func NewVenueStore(directory providers.VenueDirectory) *VenueStore {
	return &VenueStore{
		directory:   directory,
		venues:      make(map[string]entities.Venue),
		subscribers: make(map[int]SnapshotCallback),
	}
}

// ApplyRemoteSnapshot replaces the mirrored state with a backend read. A
// record that fails validation is skipped and logged rather than aborting the
// whole batch; tolerating partially-populated remote documents is a deliberate
// choice carried over from the directory's loose schema, and the log line is
// what keeps real data loss visible.
func (s *VenueStore) ApplyRemoteSnapshot(records []*entities.Venue) {
	order := make([]string, 0, len(records))
	venues := make(map[string]entities.Venue, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		if err := record.Validate(); err != nil {
			log.Printf("Skipping malformed venue record %q: %v", record.Key, err)
			continue
		}
		if _, dup := venues[record.Key]; dup {
			log.Printf("Skipping duplicate venue record %q in snapshot", record.Key)
			continue
		}
		order = append(order, record.Key)
		venues[record.Key] = *record
	}

	s.mu.Lock()
	s.order = order
	s.venues = venues
	s.mu.Unlock()

	s.notify()
}

// GetAll returns a restartable copy of the current snapshot in backend order.
func (s *VenueStore) GetAll() []entities.Venue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	venues := make([]entities.Venue, 0, len(s.order))
	for _, key := range s.order {
		venues = append(venues, s.venues[key])
	}
	return venues
}

// GetByKey returns the mirrored record for one venue.
func (s *VenueStore) GetByKey(key string) (entities.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	venue, ok := s.venues[key]
	if !ok {
		return entities.Venue{}, apperrors.NewNotFoundError(fmt.Sprintf("venue %s not found", key))
	}
	return venue, nil
}

// Subscribe registers a callback invoked on every snapshot application. The
// returned function removes the subscription. Missed snapshots are not
// replayed.
func (s *VenueStore) Subscribe(callback SnapshotCallback) func() {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = callback
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

func (s *VenueStore) notify() {
	s.subMu.Lock()
	callbacks := make([]SnapshotCallback, 0, len(s.subscribers))
	for _, cb := range s.subscribers {
		callbacks = append(callbacks, cb)
	}
	s.subMu.Unlock()

	// Each subscriber gets its own copy; callbacks may retain or mutate it.
	for _, cb := range callbacks {
		cb(s.GetAll())
	}
}

// Refresh re-reads the full collection from the directory and applies it.
func (s *VenueStore) Refresh(ctx context.Context) error {
	records, err := s.directory.ListVenues(ctx)
	if err != nil {
		return fmt.Errorf("refresh venue mirror: %w", err)
	}
	s.ApplyRemoteSnapshot(records)
	return nil
}

// Run keeps the mirror current until ctx is cancelled: one initial refresh,
// then a refresh for every venue event delivered on the broadcast channel.
// This replaces fixed-delay polling; consumers react to delivered snapshots.
func (s *VenueStore) Run(ctx context.Context, bus providers.EventBus) error {
	if err := s.Refresh(ctx); err != nil {
		log.Printf("Initial venue mirror refresh failed: %v", err)
	}

	eventChan, err := bus.Subscribe(ctx, providers.EventChannelVenueUpdates)
	if err != nil {
		return fmt.Errorf("subscribe venue mirror: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-eventChan:
			if !ok {
				return nil
			}
			if event == nil {
				continue
			}
			if err := s.Refresh(ctx); err != nil {
				log.Printf("Venue mirror refresh after %s event failed: %v", event.EventType, err)
			}
		}
	}
}
