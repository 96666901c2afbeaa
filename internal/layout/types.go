package layout

import "time"

// StudentInfo is a single student record from the backend's complete-info endpoint.
type StudentInfo struct {
	ID                int64      `json:"id"`
	StudentName       string     `json:"studentName"`
	RollNumber        string     `json:"rollNumber"`
	ContactNumber     string     `json:"contactNumber"`
	TableNumber       int        `json:"tableNumber"`
	RoomNumber        string     `json:"roomNumber"`
	AmountPaid        float64    `json:"amountPaid"`
	Paid              bool       `json:"paid"`
	PaymentDate       *string    `json:"paymentDate"`
	DueDate           *string    `json:"dueDate"`
	DurationMonths    *int       `json:"durationMonths"`
	PaymentDateParsed *time.Time `json:"-"`
	DueDateParsed     *time.Time `json:"-"`
}

// TableInfo is a vacant table descriptor from the available-tables endpoint.
type TableInfo struct {
	TableID     int64  `json:"tableId"`
	RoomNumber  string `json:"roomNumber"`
	TableNumber int    `json:"tableNumber"`
	RoomName    string `json:"roomName"`
}

// RoomOption is a room identifier from the rooms endpoint, used for the
// assignment form's room selector.
type RoomOption struct {
	RoomNumber string `json:"roomNumber"`
}
