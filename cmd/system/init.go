package system

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const starterConfig = `backend:
  base_url: ""            # required, e.g. https://clinic.example.com/api
  timeout_seconds: 15

state:
  dir: ""                 # default: ~/.clinicdesk

cache:
  freshness_seconds: 30

search:
  debounce_ms: 300

auth:
  permission_fetch_max_tries: 3
  dev_bypass:
    enabled: false
    email: ""
    capabilities: []

console:
  environment: production

logging:
  level: info
  format: json
  output:
    stdout: true
    file:
      enabled: false
      path: clinicdesk.log
      max_size_mb: 10
      max_backups: 3
      max_age_days: 14
      compress: true
    loki:
      enabled: false
      endpoint: ""
`

func NewInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter config.yaml next to the binary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return fmt.Errorf("failed to get config flag: %w", err)
			}

			if _, err := os.Stat(cfgPath); err == nil {
				return fmt.Errorf("%s already exists, refusing to overwrite", cfgPath)
			}
			if err := os.WriteFile(cfgPath, []byte(starterConfig), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", cfgPath, err)
			}

			fmt.Printf("wrote %s; set backend.base_url before first use\n", cfgPath)
			return nil
		},
	}
}
