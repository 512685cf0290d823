// Package console holds the operator-facing screens. Which screen
// mounts is pure capability dispatch; what each screen offers is decided
// by the same single ability predicate every mutating action funnels
// through before it is offered at all.
package console

import (
	"context"
	"io"
	"log/slog"

	"github.com/nguyenthanhduc0901/clinicdesk/internal/service/appointment"
	"github.com/nguyenthanhduc0901/clinicdesk/internal/session"
	"github.com/nguyenthanhduc0901/clinicdesk/pkg/ability"
)

// View is one interchangeable screen variant. Construction is
// side-effect-free; all I/O happens in Render.
type View interface {
	Name() string
	// Controls lists the action names this variant offers the current
	// operator. Anything requiring a capability the operator lacks is
	// absent, not disabled-but-visible.
	Controls() []string
	Render(ctx context.Context, w io.Writer) error
}

// SessionReader is the read-only slice of the session the screens need.
type SessionReader interface {
	Identity() (session.Identity, bool)
	Capabilities() []ability.Capability
}

type Deps struct {
	Appointments appointment.Service
	Session      SessionReader
	Logger       *slog.Logger

	// Date filters the mounted screen; empty means the server's "today".
	Date string
}

// control couples an operator action with the capabilities it requires.
type control struct {
	name     string
	requires []ability.Capability
}

// Every mutating control in the application, with its gate. The list is
// shared by both appointment views; each instance re-evaluates it
// against the live capability set.
var appointmentControls = []control{
	{name: "create", requires: []ability.Capability{ability.CapAppointmentCreate}},
	{name: "create-with-new-patient", requires: []ability.Capability{ability.CapAppointmentCreate, ability.CapPatientCreate}},
	{name: "set-status", requires: []ability.Capability{ability.CapAppointmentUpdate}},
	{name: "reschedule", requires: []ability.Capability{ability.CapAppointmentUpdate}},
	{name: "assign-doctor", requires: []ability.Capability{ability.CapAppointmentUpdate, ability.CapStaffRead}},
	{name: "delete", requires: []ability.Capability{ability.CapAppointmentDelete}},
}

func allowedControls(caps []ability.Capability) []string {
	var out []string
	for _, c := range appointmentControls {
		if ability.Can(caps, c.requires) {
			out = append(out, c.name)
		}
	}
	return out
}

// RequiredFor exposes a control's gate so the command layer re-checks
// the same predicate right before issuing the mutation.
func RequiredFor(controlName string) []ability.Capability {
	for _, c := range appointmentControls {
		if c.name == controlName {
			return c.requires
		}
	}
	return []ability.Capability{ability.CapPermissionManage}
}
