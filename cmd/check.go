package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dns-stats-datasource/datasource"
	"dns-stats-datasource/models"
)

var checkCommand = &cobra.Command{
	Use:   "check",
	Short: "Probe the backend with the configured credentials",
	Run: func(cmd *cobra.Command, args []string) {
		conf := loadConfig()
		ctx := context.Background()

		backend, closeBackend, err := newBackend(ctx, conf, nil)
		if err != nil {
			logrus.Fatalf("failed to init backend: %v", err)
		}

		res := datasource.New(backend, nil).CheckHealth(ctx)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", res.Status, res.Message)
		closeBackend()
		if res.Status != models.ProbeSuccess {
			os.Exit(1)
		}
	},
}
