package appointments

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyenthanhduc0901/clinicdesk/pkg/reqctx"
)

func NewDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := requireControl(a, "delete"); err != nil {
				return err
			}

			id := args[0]
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return fmt.Errorf("removing %s is permanent; re-run with --yes to confirm", id)
			}

			release, ok := guard.Begin("delete", id)
			if !ok {
				return fmt.Errorf("a delete for %s is already in flight", id)
			}
			defer release()

			ctx := reqctx.WithRequestMeta(cmd.Context(), reqctx.NewRequestMeta("appointments.delete"))
			removed, err := a.Appointments.Remove(ctx, id)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("backend did not confirm removal of %s", id)
			}
			fmt.Printf("appointment %s removed\n", id)
			return nil
		},
	}

	cmd.Flags().Bool("yes", false, "confirm the removal")

	return cmd
}
