package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyenthanhduc0901/clinicdesk/internal/api/rest"

	appointmentscmd "github.com/nguyenthanhduc0901/clinicdesk/cmd/appointments"
	authcmd "github.com/nguyenthanhduc0901/clinicdesk/cmd/auth"
	systemcmd "github.com/nguyenthanhduc0901/clinicdesk/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "frontdesk",
	Short: "Clinic front-desk console for the daily appointment flow.",
	Long: `frontdesk is the reception-side console for a clinic backend.
It signs staff in, mounts the screen their capabilities allow, and drives
the appointment lifecycle: booking, status changes, reschedules, doctor
assignment and the daily summary.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Backend rejections carry an operator-ready message; show that
		// instead of the wrapped chain.
		var apiErr *rest.Error
		if errors.As(err, &apiErr) {
			fmt.Fprintln(os.Stderr, apiErr.UserMessage())
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	rootCmd.AddCommand(authcmd.NewAuthCommand())
	rootCmd.AddCommand(appointmentscmd.NewAppointmentsCommand())
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
}
