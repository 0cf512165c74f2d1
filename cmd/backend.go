package cmd

import (
	"context"

	"github.com/sirupsen/logrus"

	"dns-stats-datasource/client"
	"dns-stats-datasource/config"
	"dns-stats-datasource/datasource"
	"dns-stats-datasource/db"
	"dns-stats-datasource/metrics"
)

// newBackend builds the statistics source selected in the config. The
// returned func releases it.
func newBackend(ctx context.Context, conf *config.Config, m *metrics.Metrics) (datasource.Backend, func(), error) {
	switch conf.Datasource.Backend {
	case config.BackendClickHouse:
		src, err := db.Open(ctx, conf.ClickHouse.DSN, conf.ClickHouse.MaxAttempts, m)
		if err != nil {
			return nil, nil, err
		}
		logrus.Info("Connected to ClickHouse")
		return src, func() { src.Close() }, nil
	default:
		return client.New(client.OptionsFromConfig(conf.Datasource, m)), func() {}, nil
	}
}

func loadConfig() *config.Config {
	conf, err := config.LoadConfig(configFile)
	if err != nil {
		logrus.Fatal("loadConfig error, ", err.Error())
	}
	return conf
}
