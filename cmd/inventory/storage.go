package main

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	appservice "inventory/pkg/inventory/application/service"
	"inventory/pkg/inventory/infrastructure/audit"
	"inventory/pkg/inventory/infrastructure/memory"
	"inventory/pkg/inventory/infrastructure/migrations"
	"inventory/pkg/inventory/infrastructure/mysql"
)

type storage struct {
	appservice.Storage
	health func(ctx context.Context) error
	close  func() error
}

func openStorage(ctx context.Context, c *config) (*storage, error) {
	if c.DBDriver == driverMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		return &storage{
			Storage: memory.NewStore(),
			close:   func() error { return nil },
		}, nil
	}

	db, err := connectDB(ctx, c)
	if err != nil {
		return nil, err
	}
	if c.DBMigrateOnStart {
		if err := migrations.Up(db.DB); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return &storage{
		Storage: mysql.NewStore(db),
		health:  db.PingContext,
		close:   db.Close,
	}, nil
}

// connectDB retries until the database accepts connections or the connect timeout elapses.
func connectDB(ctx context.Context, c *config) (*sqlx.DB, error) {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = c.DBConnectTimeout

	var db *sqlx.DB
	operation := func() error {
		var err error
		db, err = mysql.Open(ctx, mysql.ConnectionConfig{
			DSN:             c.DBDSN,
			MaxOpenConns:    c.DBMaxConnections,
			ConnMaxLifetime: c.DBConnMaxLifetime,
		})
		return err
	}
	notify := func(err error, next time.Duration) {
		log.WithError(err).WithField("retryIn", next.String()).Warn("database is not ready")
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(policy, ctx), notify); err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	return db, nil
}

func openPublisher(c *config) (audit.Publisher, error) {
	switch c.AuditSink {
	case auditSinkKafka:
		log.WithField("topic", c.KafkaTopic).Info("publishing audit events to kafka")
		return audit.NewKafkaPublisher(c.KafkaBrokers, c.KafkaTopic), nil
	case auditSinkAMQP:
		log.WithField("exchange", c.AMQPExchange).Info("publishing audit events to amqp")
		return audit.NewAMQPPublisher(c.AMQPURL, c.AMQPExchange)
	default:
		return nil, nil
	}
}
