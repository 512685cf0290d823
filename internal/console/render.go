package console

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/nguyenthanhduc0901/clinicdesk/internal/service/appointment"
)

// RenderSummary draws the one-row per-status count table for a day.
func RenderSummary(w io.Writer, sum *appointment.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Waiting", "Confirmed", "Checked In", "In Progress", "Completed", "Cancelled", "Total"})
	row := make([]string, 0, 7)
	for _, st := range appointment.AllStatuses {
		row = append(row, fmt.Sprintf("%d", sum.Get(st)))
	}
	row = append(row, fmt.Sprintf("%d", sum.Total()))
	table.Append(row)
	table.Render()
}

// RenderAppointments draws the queue table. The staff column is an
// administrative concern and stays off the front-desk variant.
func RenderAppointments(w io.Writer, items []appointment.Appointment, withStaff bool) {
	table := tablewriter.NewWriter(w)
	header := []string{"#", "Time", "Patient", "Phone", "Status", "Next"}
	if withStaff {
		header = append(header, "Doctor")
	}
	table.SetHeader(header)

	for _, a := range items {
		row := []string{
			fmt.Sprintf("%d", a.OrderNumber),
			formatSlot(a.AppointmentDate),
			displayName(a.PatientName, a.PatientID),
			a.PatientPhone,
			string(a.Status),
			nextStep(a.Status),
		}
		if withStaff {
			row = append(row, staffCell(a))
		}
		table.Append(row)
	}
	table.Render()
}

func formatSlot(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04")
}

// displayName falls back to the id when the backend omits the
// denormalized name.
func displayName(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

// nextStep hints the usual forward move for a row. Advisory text only;
// the operator may request any transition and the server decides.
func nextStep(from appointment.Status) string {
	for _, to := range appointment.AllStatuses {
		if to == from || to == appointment.StatusCancelled {
			continue
		}
		if appointment.Plausible(from, to) {
			return string(to)
		}
	}
	return ""
}

func staffCell(a appointment.Appointment) string {
	if a.StaffName != "" {
		return a.StaffName
	}
	if a.StaffID != nil {
		return *a.StaffID
	}
	return "unassigned"
}
