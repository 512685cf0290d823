package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyenthanhduc0901/clinicdesk/pkg/reqctx"
)

func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and drop the local session snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			ctx := reqctx.WithRequestMeta(cmd.Context(), reqctx.NewRequestMeta("auth.logout"))
			if err := a.Auth.Logout(ctx); err != nil {
				return err
			}
			fmt.Println("signed out")
			return nil
		},
	}
}
