package appointments

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyenthanhduc0901/clinicdesk/internal/api/rest"
	"github.com/nguyenthanhduc0901/clinicdesk/internal/service/appointment"
	"github.com/nguyenthanhduc0901/clinicdesk/internal/service/patient"
	"github.com/nguyenthanhduc0901/clinicdesk/pkg/reqctx"
)

func NewCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Book an appointment, optionally registering a walk-in patient first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			patientID, _ := cmd.Flags().GetString("patient")
			newName, _ := cmd.Flags().GetString("new-patient-name")
			newPhone, _ := cmd.Flags().GetString("new-patient-phone")
			at, _ := cmd.Flags().GetString("at")
			staffID, _ := cmd.Flags().GetString("staff")
			notes, _ := cmd.Flags().GetString("notes")

			if patientID != "" && newName != "" {
				return fmt.Errorf("%w: --patient and --new-patient-name are mutually exclusive", rest.ErrValidation)
			}

			controlName := "create"
			if newName != "" {
				controlName = "create-with-new-patient"
			}
			if err := requireControl(a, controlName); err != nil {
				return err
			}

			when, err := parseWhen(at)
			if err != nil {
				return err
			}

			ctx := reqctx.WithRequestMeta(cmd.Context(), reqctx.NewRequestMeta("appointments.create"))

			// The walk-in record must exist before the booking references
			// it; a failed create aborts the whole flow.
			if newName != "" {
				p, err := a.Patients.Create(ctx, patient.CreateRequest{Name: newName, Phone: newPhone})
				if err != nil {
					return err
				}
				fmt.Printf("patient registered: %s (%s)\n", p.Name, p.ID)
				patientID = p.ID
			}

			req := appointment.CreateRequest{
				PatientID:       patientID,
				AppointmentDate: when,
			}
			if staffID != "" {
				req.StaffID = &staffID
			}
			if notes != "" {
				req.Notes = &notes
			}

			appt, err := a.Appointments.Create(ctx, req)
			if err != nil {
				return err
			}
			fmt.Printf("booked #%d for %s at %s (%s)\n",
				appt.OrderNumber, patientID, appt.AppointmentDate.Format("2006-01-02 15:04"), appt.Status)
			return nil
		},
	}

	cmd.Flags().String("patient", "", "existing patient id")
	cmd.Flags().String("new-patient-name", "", "register a walk-in patient with this name first")
	cmd.Flags().String("new-patient-phone", "", "walk-in patient phone")
	cmd.Flags().String("at", "", "when, RFC3339 or \"2006-01-02 15:04\"")
	cmd.Flags().String("staff", "", "assign this staff id immediately")
	cmd.Flags().String("notes", "", "free-form booking notes")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}
