package appointments

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyenthanhduc0901/clinicdesk/internal/console"
	"github.com/nguyenthanhduc0901/clinicdesk/pkg/reqctx"
)

func NewOpenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Mount the appointments screen this account's capabilities allow",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			date, _ := cmd.Flags().GetString("date")

			view := console.SelectView(console.Deps{
				Appointments: a.Appointments,
				Session:      a.Session,
				Logger:       a.Logger,
				Date:         date,
			})
			a.Logger.Debug("screen mounted", "view", view.Name())

			ctx := reqctx.WithRequestMeta(cmd.Context(), reqctx.NewRequestMeta("appointments.open"))
			return view.Render(ctx, os.Stdout)
		},
	}

	cmd.Flags().String("date", "", "day to show as YYYY-MM-DD (default: server's today)")

	return cmd
}
