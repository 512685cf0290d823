package appointments

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyenthanhduc0901/clinicdesk/internal/console"
	"github.com/nguyenthanhduc0901/clinicdesk/pkg/reqctx"
)

func NewSummaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Per-status counts for one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			date, _ := cmd.Flags().GetString("date")

			ctx := reqctx.WithRequestMeta(cmd.Context(), reqctx.NewRequestMeta("appointments.summary"))
			sum, err := a.Appointments.TodaySummary(ctx, date)
			if err != nil {
				return err
			}
			console.RenderSummary(os.Stdout, sum)
			return nil
		},
	}

	cmd.Flags().String("date", "", "day as YYYY-MM-DD (default: server's today)")

	return cmd
}
