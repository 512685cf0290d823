package appointments

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyenthanhduc0901/clinicdesk/internal/console"
	"github.com/nguyenthanhduc0901/clinicdesk/internal/service/appointment"
	"github.com/nguyenthanhduc0901/clinicdesk/pkg/ability"
	"github.com/nguyenthanhduc0901/clinicdesk/pkg/reqctx"
)

func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments with filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			req := appointment.ListRequest{}
			req.Date, _ = cmd.Flags().GetString("date")
			req.Query, _ = cmd.Flags().GetString("query")
			req.PatientID, _ = cmd.Flags().GetString("patient")
			req.StaffID, _ = cmd.Flags().GetString("staff")
			req.Page, _ = cmd.Flags().GetInt("page")
			req.Limit, _ = cmd.Flags().GetInt("limit")

			if raw, _ := cmd.Flags().GetString("status"); raw != "" {
				st, err := appointment.ParseStatus(raw)
				if err != nil {
					return err
				}
				req.Status = &st
			}

			ctx := reqctx.WithRequestMeta(cmd.Context(), reqctx.NewRequestMeta("appointments.list"))
			res, err := a.Appointments.List(ctx, req)
			if err != nil {
				return err
			}

			withStaff := ability.Can(a.Session.Capabilities(), []ability.Capability{ability.CapStaffRead})
			console.RenderAppointments(os.Stdout, res.Items, withStaff)
			fmt.Printf("%d of %d\n", len(res.Items), res.Total)
			return nil
		},
	}

	cmd.Flags().String("date", "", "day as YYYY-MM-DD (default: server's today)")
	cmd.Flags().String("status", "", "filter by status")
	cmd.Flags().String("query", "", "patient name or phone fragment")
	cmd.Flags().String("patient", "", "filter by patient id")
	cmd.Flags().String("staff", "", "filter by assigned staff id")
	cmd.Flags().Int("page", 1, "1-based page")
	cmd.Flags().Int("limit", 20, "rows per page")

	return cmd
}
