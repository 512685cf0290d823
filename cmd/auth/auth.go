package auth

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nguyenthanhduc0901/clinicdesk/config"
	"github.com/nguyenthanhduc0901/clinicdesk/internal/app"
)

func NewAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in, sign out and inspect the current session",
	}

	cmd.AddCommand(NewLoginCommand())
	cmd.AddCommand(NewLogoutCommand())
	cmd.AddCommand(NewWhoamiCommand())

	return cmd
}

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
