// Package ability is the single authorization predicate of the console.
// Every mutating control in the application consults Can before it is
// offered to the operator; nothing else branches on permissions.
package ability

import "github.com/samber/lo"

// Can reports whether a capability set satisfies a required list.
//
// An empty or nil required list always passes. The wildcard
// "permission:manage" passes everything. Otherwise every required
// capability must be present (conjunctive). Pure, total, no I/O.
func Can(capabilities []Capability, required []Capability) bool {
	if len(required) == 0 {
		return true
	}
	if lo.Contains(capabilities, CapPermissionManage) {
		return true
	}
	return lo.Every(capabilities, required)
}

// CanStrings is Can over the raw string sets the wire layer produces.
func CanStrings(capabilities []string, required []string) bool {
	return Can(
		lo.Map(capabilities, func(s string, _ int) Capability { return Capability(s) }),
		lo.Map(required, func(s string, _ int) Capability { return Capability(s) }),
	)
}

// DefaultLandingRoute picks the post-login screen for a role label.
// A fixed lookup, not a capability check.
func DefaultLandingRoute(roleLabel string) Route {
	switch roleLabel {
	case RoleLabelPatient:
		return RouteProfile
	default:
		return RouteDashboard
	}
}
