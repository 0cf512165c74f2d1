package db

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/sirupsen/logrus"

	"dns-stats-datasource/metrics"
)

const retryInterval = 1 * time.Second

// Source serves statistics from the dns_logs table that the dnstap
// collector fills.
type Source struct {
	DB      *sql.DB
	metrics *metrics.Metrics
}

func NewSource(db *sql.DB, m *metrics.Metrics) *Source {
	return &Source{DB: db, metrics: m}
}

// Open connects to ClickHouse, retrying until the server answers a ping or
// attempts run out.
func Open(ctx context.Context, dsn string, attempts int, m *metrics.Metrics) (*Source, error) {
	var (
		conn *sql.DB
		err  error
	)
	for i := 0; i < attempts; i++ {
		conn, err = sql.Open("clickhouse", dsn)
		if err == nil {
			if err = conn.PingContext(ctx); err == nil {
				return NewSource(conn, m), nil
			}
			conn.Close()
		}
		logrus.Warnf("Waiting for ClickHouse... (%v)", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return nil, err
}

func (s *Source) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}
