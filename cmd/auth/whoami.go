package auth

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session and its capabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			id, ok := a.Session.Identity()
			if !ok {
				fmt.Println("not signed in")
				return nil
			}

			fmt.Printf("email: %s\n", id.Email)
			if id.RoleLabel != "" {
				fmt.Printf("role:  %s\n", id.RoleLabel)
			}
			if id.StaffID != "" {
				fmt.Printf("staff: %s\n", id.StaffID)
			}
			fmt.Println("capabilities:")
			for _, c := range a.Session.Capabilities() {
				fmt.Printf("  %s\n", c)
			}
			return nil
		},
	}
}
