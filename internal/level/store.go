package level

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a record id is unknown to the store.
var ErrNotFound = errors.New("record not found")

// Store persists levels and markers. The generator never touches it; only
// the Builder does.
type Store interface {
	CreateLevel(ctx context.Context, level Level) (uuid.UUID, error)
	Level(ctx context.Context, id uuid.UUID) (Level, error)
	CreateMarker(ctx context.Context, marker Marker) (uuid.UUID, error)
	UpdateMarker(ctx context.Context, marker Marker) error
	Markers(ctx context.Context, levelID uuid.UUID) ([]Marker, error)
}

// Snapshot is the full contents of a MemoryStore in creation order.
type Snapshot struct {
	Levels  []Level  `json:"levels"`
	Markers []Marker `json:"markers"`
}

// MemoryStore is an in-memory Store safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	levels  []Level
	markers []Marker
	index   map[uuid.UUID]int // Position in levels or markers
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{index: make(map[uuid.UUID]int)}
}

// CreateLevel stores a level, assigning an id if it has none.
func (s *MemoryStore) CreateLevel(_ context.Context, level Level) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if level.ID == uuid.Nil {
		level.ID = uuid.New()
	}
	if _, exists := s.index[level.ID]; exists {
		return uuid.Nil, fmt.Errorf("duplicate record id %s", level.ID)
	}
	s.index[level.ID] = len(s.levels)
	s.levels = append(s.levels, level)
	return level.ID, nil
}

// Level returns the level with the given id.
func (s *MemoryStore) Level(_ context.Context, id uuid.UUID) (Level, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok || i >= len(s.levels) || s.levels[i].ID != id {
		return Level{}, fmt.Errorf("level %s: %w", id, ErrNotFound)
	}
	return s.levels[i], nil
}

// CreateMarker stores a marker, assigning an id if it has none.
func (s *MemoryStore) CreateMarker(_ context.Context, marker Marker) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if marker.ID == uuid.Nil {
		marker.ID = uuid.New()
	}
	if _, exists := s.index[marker.ID]; exists {
		return uuid.Nil, fmt.Errorf("duplicate record id %s", marker.ID)
	}
	s.index[marker.ID] = len(s.markers)
	s.markers = append(s.markers, marker)
	return marker.ID, nil
}

// UpdateMarker replaces a stored marker.
func (s *MemoryStore) UpdateMarker(_ context.Context, marker Marker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[marker.ID]
	if !ok || i >= len(s.markers) || s.markers[i].ID != marker.ID {
		return fmt.Errorf("marker %s: %w", marker.ID, ErrNotFound)
	}
	s.markers[i] = marker
	return nil
}

// Markers returns the markers on a level in creation order.
func (s *MemoryStore) Markers(_ context.Context, levelID uuid.UUID) ([]Marker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Marker
	for _, m := range s.markers {
		if m.ParentID == levelID {
			result = append(result, m)
		}
	}
	return result, nil
}

// Snapshot returns a copy of everything stored.
func (s *MemoryStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	levels := make([]Level, len(s.levels))
	copy(levels, s.levels)
	markers := make([]Marker, len(s.markers))
	copy(markers, s.markers)
	return Snapshot{Levels: levels, Markers: markers}
}
