package layout

import (
	"fmt"

	"studyseat-dashboard/config"
)

// StudentSnapshot is the denormalized student copy attached to an occupied table.
// The authoritative record lives on the backend; this exists only for display.
type StudentSnapshot struct {
	ID            int64
	Name          string
	RollNumber    string
	ContactNumber string
}

// PaymentSnapshot is the denormalized payment copy attached to an occupied table.
type PaymentSnapshot struct {
	Amount      float64
	Paid        bool
	PaymentDate *string
	DueDate     *string
}

// Table is one assignable seat unit, identified by room + number.
// Invariant: IsOccupied is true iff Student is non-nil; Reconcile sets both together.
type Table struct {
	ID          string
	RoomNumber  string
	RoomName    string
	TableNumber int
	IsOccupied  bool
	Student     *StudentSnapshot
	Payment     *PaymentSnapshot
}

// Room is a fixed-capacity container of tables.
type Room struct {
	ID     string
	Name   string
	Tables []*Table
}

// TableID builds the composite table identifier used throughout the system.
func TableID(roomNumber string, tableNumber int) string {
	return fmt.Sprintf("%s-T%d", roomNumber, tableNumber)
}

// BuildRooms constructs the room list and the flat table index from the
// configured layout. It is deterministic and must run before any reconciliation.
func BuildRooms(roomConfigs []config.RoomConfig, tablesPerRoom int) ([]*Room, []*Table) {
	rooms := make([]*Room, 0, len(roomConfigs))
	index := make([]*Table, 0, len(roomConfigs)*tablesPerRoom)

	for _, rc := range roomConfigs {
		room := &Room{
			ID:     rc.ID,
			Name:   rc.Name,
			Tables: make([]*Table, 0, tablesPerRoom),
		}
		for n := 1; n <= tablesPerRoom; n++ {
			table := &Table{
				ID:          TableID(rc.ID, n),
				RoomNumber:  rc.ID,
				RoomName:    rc.Name,
				TableNumber: n,
			}
			room.Tables = append(room.Tables, table)
			index = append(index, table)
		}
		rooms = append(rooms, room)
	}

	return rooms, index
}
