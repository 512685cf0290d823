package console

import "github.com/nguyenthanhduc0901/clinicdesk/pkg/ability"

// SelectView mounts exactly one screen variant for the operator's
// capability set. Order matters: the administrative variant wins when
// the management capability is present, regardless of what else the
// set contains.
func SelectView(deps Deps) View {
	caps := deps.Session.Capabilities()
	switch {
	case ability.Can(caps, []ability.Capability{ability.CapPermissionManage}):
		return newAdministrativeView(deps)
	case ability.Can(caps, []ability.Capability{ability.CapAppointmentRead}):
		return newFrontDeskView(deps)
	default:
		return noAccessView{}
	}
}
