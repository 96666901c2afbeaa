package view

import (
	"strconv"
	"time"

	"studyseat-dashboard/internal/layout"
	"studyseat-dashboard/internal/state"
)

// Notice is a dismissible flash banner shown after a command completes.
type Notice struct {
	Kind    string // "success", "error" or "info"
	Message string
}

// TableCell is one cell of a room's table grid.
type TableCell struct {
	ID          string
	TableNumber int
	Occupied    bool
	Label       string
	Tooltip     string
}

// RoomView is one room card: derived stats plus the table grid.
type RoomView struct {
	RoomNumber string
	RoomName   string
	Stats      layout.RoomStats
	Cells      []TableCell
}

// StudentRow is one roster or fee-table row.
type StudentRow struct {
	ID          int64
	Name        string
	RollNumber  string
	Contact     string
	RoomNumber  string
	TableNumber int
	Amount      float64
	Paid        bool
}

// ValidityView is the rendered validity window for the fee form.
type ValidityView struct {
	Start   string
	Expiry  string
	Months  int
	Expired bool
}

// FormPrefill echoes assignment form values back into the page, either from a
// vacant-table pick or from a failed submission whose input must be retained.
type FormPrefill struct {
	Name    string
	Contact string
	Room    string
	Table   string
	Amount  string
}

// PageData feeds the full dashboard page.
type PageData struct {
	Notice          *Notice
	TotalStudents   int
	TotalTables     int
	AvailableTables int
	TotalRevenue    float64
	Rooms           []RoomView
	Roster          []StudentRow
	Query           string
	FeeStats        layout.FeeStats
	FeeRows         []StudentRow
	RoomOptions     []string
	Prefill         FormPrefill
	RefreshedAt     time.Time
}

// money renders an amount without trailing zeros. Missing amounts are already
// defaulted to 0 upstream.
func money(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// naString substitutes "N/A" for empty optional display fields.
func naString(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// BuildRoomViews derives the room cards from the reconciled model.
func BuildRoomViews(rooms []*layout.Room) []RoomView {
	views := make([]RoomView, 0, len(rooms))
	for _, room := range rooms {
		rv := RoomView{
			RoomNumber: room.ID,
			RoomName:   room.Name,
			Stats:      layout.ComputeRoomStats(room),
			Cells:      make([]TableCell, 0, len(room.Tables)),
		}
		for _, t := range room.Tables {
			cell := TableCell{
				ID:          t.ID,
				TableNumber: t.TableNumber,
				Occupied:    t.IsOccupied,
				Label:       strconv.Itoa(t.TableNumber),
				Tooltip:     "Table " + strconv.Itoa(t.TableNumber),
			}
			if t.IsOccupied && t.Student != nil {
				cell.Label = "O"
				amount := 0.0
				if t.Payment != nil {
					amount = t.Payment.Amount
				}
				cell.Tooltip = t.Student.Name + " - ₹" + money(amount)
			}
			rv.Cells = append(rv.Cells, cell)
		}
		views = append(views, rv)
	}
	return views
}

// BuildStudentRows converts the student snapshot list into display rows.
func BuildStudentRows(students []layout.StudentInfo) []StudentRow {
	rows := make([]StudentRow, 0, len(students))
	for i := range students {
		s := &students[i]
		rows = append(rows, StudentRow{
			ID:          s.ID,
			Name:        naString(s.StudentName),
			RollNumber:  naString(s.RollNumber),
			Contact:     naString(s.ContactNumber),
			RoomNumber:  naString(s.RoomNumber),
			TableNumber: s.TableNumber,
			Amount:      s.AmountPaid,
			Paid:        s.Paid,
		})
	}
	return rows
}

// BuildValidityView formats a student's validity window for display.
func BuildValidityView(now time.Time, s layout.StudentInfo) ValidityView {
	v := layout.ValidityWindow(now, s)
	return ValidityView{
		Start:   v.Start.Format("Jan 2, 2006"),
		Expiry:  v.Expiry.Format("Jan 2, 2006"),
		Months:  v.Months,
		Expired: v.Expired,
	}
}

// BuildPageData assembles everything the dashboard page needs from one
// snapshot. The query filters the roster only; all other views always show the
// full model.
func BuildPageData(snap *state.Snapshot, query string, notice *Notice, prefill FormPrefill) PageData {
	feeStats := layout.ComputeFeeStats(snap.Students)

	roomOptions := make([]string, 0, len(snap.RoomOptions))
	for _, r := range snap.RoomOptions {
		roomOptions = append(roomOptions, r.RoomNumber)
	}
	if len(roomOptions) == 0 {
		// Before the first successful refresh, fall back to the configured rooms.
		for _, room := range snap.Rooms {
			roomOptions = append(roomOptions, room.ID)
		}
	}

	return PageData{
		Notice:          notice,
		TotalStudents:   len(snap.Students),
		TotalTables:     len(snap.Tables),
		AvailableTables: len(snap.AvailableTables),
		TotalRevenue:    feeStats.TotalRevenue,
		Rooms:           BuildRoomViews(snap.Rooms),
		Roster:          BuildStudentRows(layout.FilterStudents(snap.Students, query)),
		Query:           query,
		FeeStats:        feeStats,
		FeeRows:         BuildStudentRows(snap.Students),
		RoomOptions:     roomOptions,
		Prefill:         prefill,
		RefreshedAt:     snap.RefreshedAt,
	}
}
