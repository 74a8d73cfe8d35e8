// Package commands implements the invplanner CLI.
package commands

import (
	"github.com/spf13/cobra"

	"invplanner/internal/config"
	"invplanner/internal/observability"
)

var (
	cfgFile  string
	logLevel string

	cfg    *config.AppConfig
	logger *observability.Logger
)

var rootCmd = &cobra.Command{
	Use:   "invplanner",
	Short: "Inventory planning workbook classifier and extractor",
	Long: `invplanner inspects spreadsheet workbooks, decides whether they hold
inventory planning data and extracts inventory, sales, purchase order and
item master records into a normalized form.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, _, err := config.LoadConfigWithInfo(cfgFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.Log.Level = logLevel
		}
		cfg = loaded
		logger = observability.NewLogger(observability.LogConfig{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Output: cmd.ErrOrStderr(),
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: config.toml beside the executable)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(inspectCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
