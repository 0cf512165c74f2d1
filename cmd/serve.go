package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dns-stats-datasource/datasource"
	"dns-stats-datasource/handlers"
	"dns-stats-datasource/metrics"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Start the data source HTTP backend",
	Run: func(cmd *cobra.Command, args []string) {
		runServe()
	},
}

func runServe() {
	conf := loadConfig()
	logrus.Infof("backend: %s, addr: %s", conf.Datasource.Backend, conf.Addr)

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	m := metrics.New()
	backend, closeBackend, err := newBackend(ctx, conf, m)
	if err != nil {
		logrus.Fatalf("failed to init backend: %v", err)
	}
	defer closeBackend()

	h := handlers.New(datasource.New(backend, m), datasource.NewDescriptor(conf.Datasource.Backend), conf.Datasource, m)
	app := handlers.NewApp(h, conf.Auth)
	if !conf.Auth.Enabled() {
		logrus.Warn("DASHBOARD_USER/DASHBOARD_PASS not set, basic auth disabled")
	}

	go func() {
		logrus.Infof("DNS statistics data source running on %s", conf.Addr)
		if err := app.Listen(conf.Addr); err != nil {
			logrus.Fatal(err)
		}
	}()

	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)

	<-termChan
	logrus.Infof("server is shutting down...")
	if err := app.Shutdown(); err != nil {
		logrus.Errorf("server forced to shutdown: %v", err)
	}
}
