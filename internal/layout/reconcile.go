package layout

// Reconcile rebuilds table occupancy from the latest authoritative student list.
// Every table is first reset to vacant, then occupancy is re-applied from the
// records that carry both a room identifier and a table number. Records whose
// composite id matches no known table are skipped without error; the skip count
// is returned for diagnostic logging only.
//
// Running Reconcile twice with the same input yields the same table states.
func Reconcile(tables []*Table, students []StudentInfo) (skipped int) {
	byID := make(map[string]*Table, len(tables))
	for _, t := range tables {
		t.IsOccupied = false
		t.Student = nil
		t.Payment = nil
		byID[t.ID] = t
	}

	for i := range students {
		s := &students[i]
		if s.RoomNumber == "" || s.TableNumber == 0 {
			skipped++
			continue
		}
		table, ok := byID[TableID(s.RoomNumber, s.TableNumber)]
		if !ok {
			skipped++
			continue
		}
		table.IsOccupied = true
		table.Student = &StudentSnapshot{
			ID:            s.ID,
			Name:          s.StudentName,
			RollNumber:    s.RollNumber,
			ContactNumber: s.ContactNumber,
		}
		table.Payment = &PaymentSnapshot{
			Amount:      s.AmountPaid,
			Paid:        s.Paid,
			PaymentDate: s.PaymentDate,
			DueDate:     s.DueDate,
		}
	}

	return skipped
}
