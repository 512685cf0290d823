package appointments

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyenthanhduc0901/clinicdesk/internal/api/rest"
	"github.com/nguyenthanhduc0901/clinicdesk/pkg/reqctx"
)

func NewAssignDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign-doctor <id>",
		Short: "Assign a doctor to an appointment, or clear the assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := requireControl(a, "assign-doctor"); err != nil {
				return err
			}

			staffID, _ := cmd.Flags().GetString("staff")
			clear, _ := cmd.Flags().GetBool("clear")
			if (staffID == "") == !clear {
				return fmt.Errorf("%w: pass exactly one of --staff or --clear", rest.ErrValidation)
			}

			id := args[0]
			release, ok := guard.Begin("assign-doctor", id)
			if !ok {
				return fmt.Errorf("a doctor assignment for %s is already in flight", id)
			}
			defer release()

			var assignee *string
			if !clear {
				assignee = &staffID
			}

			ctx := reqctx.WithRequestMeta(cmd.Context(), reqctx.NewRequestMeta("appointments.assign"))
			appt, err := a.Appointments.AssignDoctor(ctx, id, assignee)
			if err != nil {
				return err
			}
			if appt.StaffID == nil {
				fmt.Printf("appointment %s is now unassigned\n", appt.ID)
			} else {
				fmt.Printf("appointment %s assigned to %s\n", appt.ID, *appt.StaffID)
			}
			return nil
		},
	}

	cmd.Flags().String("staff", "", "staff id to assign")
	cmd.Flags().Bool("clear", false, "remove the current assignment")

	return cmd
}
