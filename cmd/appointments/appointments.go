package appointments

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyenthanhduc0901/clinicdesk/config"
	"github.com/nguyenthanhduc0901/clinicdesk/internal/api/rest"
	"github.com/nguyenthanhduc0901/clinicdesk/internal/app"
	"github.com/nguyenthanhduc0901/clinicdesk/internal/console"
	"github.com/nguyenthanhduc0901/clinicdesk/pkg/ability"
)

func NewAppointmentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointments",
		Aliases: []string{"appt"},
		Short:   "Daily appointment queue and lifecycle operations",
	}

	cmd.AddCommand(NewOpenCommand())
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewSummaryCommand())
	cmd.AddCommand(NewCreateCommand())
	cmd.AddCommand(NewStatusCommand())
	cmd.AddCommand(NewRescheduleCommand())
	cmd.AddCommand(NewAssignDoctorCommand())
	cmd.AddCommand(NewDeleteCommand())
	cmd.AddCommand(NewBrowseCommand())

	return cmd
}

// guard spans the process so an interactive session cannot double-fire
// the same mutation for the same appointment.
var guard = console.NewGuard()

func newApp(cmd *cobra.Command) (*app.App, error) {
	cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return app.New(cfg)
}

// requireControl re-evaluates the control's gate right before the
// mutation goes out. Hidden controls are the first line; this is the
// second, and the backend is the last.
func requireControl(a *app.App, controlName string) error {
	if ability.Can(a.Session.Capabilities(), console.RequiredFor(controlName)) {
		return nil
	}
	return fmt.Errorf("%w: %s requires a capability this account lacks", rest.ErrAuthorization, controlName)
}

// parseWhen accepts the operator-facing datetime formats.
func parseWhen(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized datetime %q, use RFC3339 or \"2006-01-02 15:04\"", rest.ErrValidation, s)
}
