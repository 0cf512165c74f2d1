package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dns-stats-datasource/datasource"
)

var zonesCommand = &cobra.Command{
	Use:   "zones",
	Short: "Print every zone known to the backend, one per line",
	Run: func(cmd *cobra.Command, args []string) {
		conf := loadConfig()
		ctx := context.Background()

		backend, closeBackend, err := newBackend(ctx, conf, nil)
		if err != nil {
			logrus.Fatalf("failed to init backend: %v", err)
		}
		defer closeBackend()

		zones, err := datasource.New(backend, nil).ListZones(ctx)
		if err != nil {
			logrus.Fatalf("list zones: %v", err)
		}
		for _, z := range zones {
			fmt.Fprintln(cmd.OutOrStdout(), z.Name)
		}
	},
}
