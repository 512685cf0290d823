package auth

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyenthanhduc0901/clinicdesk/pkg/ability"
	"github.com/nguyenthanhduc0901/clinicdesk/pkg/reqctx"
)

func NewLoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and fetch this account's capabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			if email == "" {
				email = prompt("email: ")
			}
			if password == "" {
				password = prompt("password: ")
			}

			ctx := reqctx.WithRequestMeta(cmd.Context(), reqctx.NewRequestMeta("auth.login"))
			if err := a.Auth.Login(ctx, email, password); err != nil {
				return err
			}

			id, _ := a.Session.Identity()
			landing := ability.DefaultLandingRoute(id.RoleLabel)
			fmt.Printf("signed in as %s (%d capabilities), landing on %s\n",
				id.Email, len(a.Session.Capabilities()), landing)
			return nil
		},
	}

	cmd.Flags().String("email", "", "account email (prompted when omitted)")
	cmd.Flags().String("password", "", "account password (prompted when omitted)")

	return cmd
}

func prompt(label string) string {
	fmt.Fprint(os.Stderr, label)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}
