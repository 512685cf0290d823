package appointments

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/nguyenthanhduc0901/clinicdesk/internal/console"
	"github.com/nguyenthanhduc0901/clinicdesk/internal/service/appointment"
	"github.com/nguyenthanhduc0901/clinicdesk/pkg/ability"
	"github.com/nguyenthanhduc0901/clinicdesk/pkg/reqctx"
)

func NewBrowseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactively search the day's queue by patient name or phone",
		Long: `Each input line is a search query. Queries are debounced so the
backend sees one request per pause, not one per line. An empty line
shows the unfiltered day; "q" quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			date, _ := cmd.Flags().GetString("date")

			withStaff := ability.Can(a.Session.Capabilities(), []ability.Capability{ability.CapStaffRead})
			debouncer := console.NewDebouncer(a.Config.Search.Debounce())
			defer debouncer.Stop()

			// Generation counter; a result whose query was superseded
			// while the fetch was on the wire is discarded, not drawn.
			var gen atomic.Int64
			search := func(query string) {
				mine := gen.Add(1)
				ctx := reqctx.WithRequestMeta(cmd.Context(), reqctx.NewRequestMeta("appointments.browse"))
				res, err := a.Appointments.List(ctx, appointment.ListRequest{
					Date:  date,
					Query: query,
				})
				if mine != gen.Load() {
					return
				}
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					return
				}
				console.RenderAppointments(os.Stdout, res.Items, withStaff)
				fmt.Printf("%d of %d  > ", len(res.Items), res.Total)
			}

			// Initial unfiltered screen, then the input loop.
			search("")

			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "q" || line == "quit" {
					break
				}
				debouncer.Do(func() { search(line) })
			}
			return scanner.Err()
		},
	}

	cmd.Flags().String("date", "", "day as YYYY-MM-DD (default: server's today)")

	return cmd
}
