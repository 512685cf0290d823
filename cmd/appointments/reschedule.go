package appointments

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyenthanhduc0901/clinicdesk/internal/service/appointment"
	"github.com/nguyenthanhduc0901/clinicdesk/pkg/reqctx"
)

func NewRescheduleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reschedule <id>",
		Short: "Move an appointment to a new time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := requireControl(a, "reschedule"); err != nil {
				return err
			}

			at, _ := cmd.Flags().GetString("at")
			when, err := parseWhen(at)
			if err != nil {
				return err
			}

			id := args[0]
			release, ok := guard.Begin("reschedule", id)
			if !ok {
				return fmt.Errorf("a reschedule for %s is already in flight", id)
			}
			defer release()

			ctx := reqctx.WithRequestMeta(cmd.Context(), reqctx.NewRequestMeta("appointments.reschedule"))
			appt, err := a.Appointments.Reschedule(ctx, id, when)
			if err != nil {
				if errors.Is(err, appointment.ErrScheduleConflict) {
					// Keep the message actionable; the appointment kept
					// its previous time.
					return fmt.Errorf("that slot was just taken, the appointment is unchanged; pick another time")
				}
				return err
			}
			fmt.Printf("appointment %s moved to %s\n",
				appt.ID, appt.AppointmentDate.Format("2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().String("at", "", "new time, RFC3339 or \"2006-01-02 15:04\"")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}
