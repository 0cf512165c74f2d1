package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"dns-stats-datasource/datasource"
	"dns-stats-datasource/logging"
)

var (
	logLevel   string
	configFile string
)

var rootCmd = &cobra.Command{
	Use:     "dns-stats-datasource",
	Short:   "DNS statistics data source backend",
	Long:    "Serves per-zone DNS query statistics to dashboards as time series frames.",
	Version: datasource.Version,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.InitLog(logLevel)
	},
}

// Execute runs the CLI and exits non-zero when a command fails.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&logLevel, "log-level", "l", "info", "log level: debug, info, warn, error or fatal")
	flags.StringVarP(&configFile, "config", "c", "", "YAML config file; environment variables still apply when empty")

	rootCmd.AddCommand(serveCommand, zonesCommand, checkCommand)
}
