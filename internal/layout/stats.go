package layout

import "fmt"

// RoomStats holds the derived occupancy figures for a single room.
type RoomStats struct {
	RoomNumber string
	Capacity   int
	Occupied   int
	Vacant     int
	Revenue    float64
}

// OccupancyRate formats occupied/capacity as a percentage with one decimal,
// e.g. 7 of 15 tables -> "46.7%". A zero-capacity room reports "0.0%".
func (s RoomStats) OccupancyRate() string {
	if s.Capacity == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(s.Occupied)/float64(s.Capacity)*100)
}

// ComputeRoomStats derives occupancy counts and revenue for one room.
// Revenue sums payment amounts over occupied tables; a missing payment
// contributes zero.
func ComputeRoomStats(room *Room) RoomStats {
	stats := RoomStats{
		RoomNumber: room.ID,
		Capacity:   len(room.Tables),
	}
	for _, t := range room.Tables {
		if !t.IsOccupied {
			continue
		}
		stats.Occupied++
		if t.Payment != nil {
			stats.Revenue += t.Payment.Amount
		}
	}
	stats.Vacant = stats.Capacity - stats.Occupied
	return stats
}

// FeeStats holds the fee-dashboard aggregates over the full student list.
type FeeStats struct {
	TotalStudents int
	TotalRevenue  float64
	PaidCount     int
	UnpaidCount   int
}

// ComputeFeeStats aggregates revenue and paid/unpaid counts over all students.
func ComputeFeeStats(students []StudentInfo) FeeStats {
	stats := FeeStats{TotalStudents: len(students)}
	for i := range students {
		stats.TotalRevenue += students[i].AmountPaid
		if students[i].Paid {
			stats.PaidCount++
		}
	}
	stats.UnpaidCount = stats.TotalStudents - stats.PaidCount
	return stats
}
