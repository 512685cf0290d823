package appointments

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyenthanhduc0901/clinicdesk/internal/service/appointment"
	"github.com/nguyenthanhduc0901/clinicdesk/pkg/reqctx"
)

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Request a status transition; the backend decides legality",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := requireControl(a, "set-status"); err != nil {
				return err
			}

			id := args[0]
			status, err := appointment.ParseStatus(args[1])
			if err != nil {
				return err
			}

			release, ok := guard.Begin("set-status", id)
			if !ok {
				return fmt.Errorf("a status change for %s is already in flight", id)
			}
			defer release()

			ctx := reqctx.WithRequestMeta(cmd.Context(), reqctx.NewRequestMeta("appointments.status"))
			appt, err := a.Appointments.UpdateStatus(ctx, id, status)
			if err != nil {
				return err
			}
			fmt.Printf("appointment %s is now %s\n", appt.ID, appt.Status)
			return nil
		},
	}
}
