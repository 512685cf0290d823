package ability

import "strings"

type Capability string
type Route string

// ----------------------------
// Capabilities
// ----------------------------
//
// One capability names one permitted action, "namespace:action".
// The set an actor holds comes from the backend's my-permissions
// endpoint, never from a role claim.

const (
	// Wildcard: grants every gated action unconditionally.
	CapPermissionManage Capability = "permission:manage"

	// Appointments
	CapAppointmentRead   Capability = "appointment:read"
	CapAppointmentCreate Capability = "appointment:create"
	CapAppointmentUpdate Capability = "appointment:update"
	CapAppointmentDelete Capability = "appointment:delete"

	// Patients (inline creation during booking)
	CapPatientRead   Capability = "patient:read"
	CapPatientCreate Capability = "patient:create"

	// Staff lookups (doctor assignment)
	CapStaffRead Capability = "staff:read"
)

var KnownCapabilities = map[Capability]struct{}{
	CapPermissionManage: {},
	CapAppointmentRead:  {}, CapAppointmentCreate: {}, CapAppointmentUpdate: {}, CapAppointmentDelete: {},
	CapPatientRead: {}, CapPatientCreate: {},
	CapStaffRead: {},
}

// Namespace returns the part before the first colon, "" if malformed.
func (c Capability) Namespace() string {
	if i := strings.IndexByte(string(c), ':'); i > 0 {
		return string(c)[:i]
	}
	return ""
}

// ----------------------------
// Landing routes
// ----------------------------

const (
	RouteDashboard Route = "/dashboard"
	RouteProfile   Route = "/profile"
)

// Role labels as the backend reports them. Cosmetic only: the single
// place a role name is branched on is DefaultLandingRoute.
const (
	RoleLabelPatient = "patient"
)
