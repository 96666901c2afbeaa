package state

import (
	"sync"
	"time"

	"studyseat-dashboard/internal/layout"
)

// Snapshot is one fully reconciled view of the world: the rebuilt room/table
// model plus the raw lists it was derived from. It is replaced wholesale on
// every refresh and never mutated afterwards.
type Snapshot struct {
	Rooms           []*layout.Room
	Tables          []*layout.Table
	Students        []layout.StudentInfo
	AvailableTables []layout.TableInfo
	RoomOptions     []layout.RoomOption
	RefreshedAt     time.Time
}

// TableByID looks up a table in the flat index by its composite id.
func (s *Snapshot) TableByID(id string) *layout.Table {
	for _, t := range s.Tables {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// RoomByID looks up a room by its identifier.
func (s *Snapshot) RoomByID(id string) *layout.Room {
	for _, r := range s.Rooms {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// StudentByID looks up a student in the snapshot list.
func (s *Snapshot) StudentByID(id int64) *layout.StudentInfo {
	for i := range s.Students {
		if s.Students[i].ID == id {
			return &s.Students[i]
		}
	}
	return nil
}

// Cache holds the latest snapshot. Overlapping refreshes are not fenced; the
// last writer wins.
type Cache struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewCache creates a cache seeded with an empty, vacant layout so renderers
// have something to draw before the first refresh completes.
func NewCache(rooms []*layout.Room, tables []*layout.Table) *Cache {
	return &Cache{
		snap: &Snapshot{
			Rooms:  rooms,
			Tables: tables,
		},
	}
}

// Apply swaps in a new snapshot.
func (c *Cache) Apply(snap *Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap
}

// Snapshot returns the current snapshot. Callers must treat it as read-only.
func (c *Cache) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}
