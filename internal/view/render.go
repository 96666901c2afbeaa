package view

import (
	"bytes"
	"fmt"
	"time"

	"studyseat-dashboard/internal/layout"
)

// TableDetailData feeds the table detail view (occupied or vacant variant).
type TableDetailData struct {
	Table      *layout.Table
	RollNumber string
	Contact    string
	Amount     float64
	Paid       bool
}

// VacantTablesData feeds the per-room vacant table list.
type VacantTablesData struct {
	RoomNumber string
	Tables     []*layout.Table
}

// FeeFormData feeds the fee update form.
type FeeFormData struct {
	ID       int64
	Name     string
	Amount   float64
	Paid     bool
	Validity ValidityView
}

func render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// RenderPage renders the full dashboard page.
func RenderPage(data PageData) ([]byte, error) {
	return render("page", data)
}

// RenderTableDetail renders the detail view for one table.
func RenderTableDetail(table *layout.Table) ([]byte, error) {
	data := TableDetailData{Table: table}
	if table.Student != nil {
		data.RollNumber = naString(table.Student.RollNumber)
		data.Contact = naString(table.Student.ContactNumber)
	}
	if table.Payment != nil {
		data.Amount = table.Payment.Amount
		data.Paid = table.Payment.Paid
	}
	return render("table_detail", data)
}

// RenderVacantTables renders the vacant table list for one room.
func RenderVacantTables(room *layout.Room) ([]byte, error) {
	data := VacantTablesData{RoomNumber: room.ID}
	for _, t := range room.Tables {
		if !t.IsOccupied {
			data.Tables = append(data.Tables, t)
		}
	}
	return render("vacant_tables", data)
}

// RenderRoomStats renders the statistics view for one room.
func RenderRoomStats(room *layout.Room) ([]byte, error) {
	return render("room_stats", layout.ComputeRoomStats(room))
}

// RenderFeeForm renders the fee update form for one student.
func RenderFeeForm(now time.Time, s layout.StudentInfo) ([]byte, error) {
	return render("fee_form", FeeFormData{
		ID:       s.ID,
		Name:     naString(s.StudentName),
		Amount:   s.AmountPaid,
		Paid:     s.Paid,
		Validity: BuildValidityView(now, s),
	})
}
