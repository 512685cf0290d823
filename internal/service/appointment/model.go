package appointment

import "time"

// Appointment as the backend serves it. OrderNumber is a server-assigned
// queue position, opaque to the console. The denormalized patient/staff
// fields are display data only and never enter a write path.
type Appointment struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patientId"`
	StaffID         *string   `json:"staffId"`
	AppointmentDate time.Time `json:"appointmentDate"`
	OrderNumber     int       `json:"orderNumber"`
	Status          Status    `json:"status"`
	Notes           string    `json:"notes,omitempty"`

	PatientName  string `json:"patientName,omitempty"`
	PatientPhone string `json:"patientPhone,omitempty"`
	StaffName    string `json:"staffName,omitempty"`
}

// ListRequest is the filter tuple for List. A zero Date means "today"
// by server convention; the console never computes the default.
type ListRequest struct {
	Date      string // "2006-01-02"
	Status    *Status
	Query     string
	PatientID string
	StaffID   string
	Page      int // 1-based
	Limit     int
}

type ListResult struct {
	Items []Appointment `json:"data"`
	Total int           `json:"total"`
}

type CreateRequest struct {
	PatientID       string    `json:"patientId"`
	AppointmentDate time.Time `json:"appointmentDate"`
	StaffID         *string   `json:"staffId,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
}
