package console

import (
	"context"
	"fmt"
	"io"

	"github.com/nguyenthanhduc0901/clinicdesk/internal/service/appointment"
)

const (
	ViewAdministrative = "administrative"
	ViewFrontDesk      = "front-desk"
	ViewNoAccess       = "no-access"
)

// appointmentsView is the shared body behind the two staffed variants.
// They differ in chrome (name, staff column, paging depth), not in data
// access; both go through the same appointment service and so the same
// cache.
type appointmentsView struct {
	name      string
	deps      Deps
	withStaff bool
	pageLimit int
}

func (v *appointmentsView) Name() string { return v.name }

func (v *appointmentsView) Controls() []string {
	return allowedControls(v.deps.Session.Capabilities())
}

func (v *appointmentsView) Render(ctx context.Context, w io.Writer) error {
	if id, ok := v.deps.Session.Identity(); ok {
		fmt.Fprintf(w, "%s  signed in as %s\n\n", v.name, id.Email)
	}

	sum, err := v.deps.Appointments.TodaySummary(ctx, v.deps.Date)
	if err != nil {
		return fmt.Errorf("render %s summary: %w", v.name, err)
	}
	RenderSummary(w, sum)

	list, err := v.deps.Appointments.List(ctx, appointment.ListRequest{
		Date:  v.deps.Date,
		Limit: v.pageLimit,
	})
	if err != nil {
		return fmt.Errorf("render %s list: %w", v.name, err)
	}
	RenderAppointments(w, list.Items, v.withStaff)
	if list.Total > len(list.Items) {
		fmt.Fprintf(w, "showing %d of %d\n", len(list.Items), list.Total)
	}

	if controls := v.Controls(); len(controls) > 0 {
		fmt.Fprintf(w, "\nactions: %v\n", controls)
	}
	return nil
}

func newFrontDeskView(deps Deps) View {
	return &appointmentsView{name: ViewFrontDesk, deps: deps, pageLimit: 20}
}

func newAdministrativeView(deps Deps) View {
	return &appointmentsView{name: ViewAdministrative, deps: deps, withStaff: true, pageLimit: 50}
}

// noAccessView is the terminal screen for a principal whose capability
// set grants no appointment access at all. It offers nothing and calls
// nothing.
type noAccessView struct{}

func (noAccessView) Name() string       { return ViewNoAccess }
func (noAccessView) Controls() []string { return nil }

func (noAccessView) Render(_ context.Context, w io.Writer) error {
	fmt.Fprintln(w, "your account has no front-desk access; contact an administrator")
	return nil
}
