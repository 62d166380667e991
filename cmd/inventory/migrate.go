package main

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"inventory/pkg/inventory/infrastructure/migrations"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply database migrations and exit",
		Action: func(c *cli.Context) error {
			cfg, err := parseEnv()
			if err != nil {
				return err
			}
			if cfg.DBDriver != driverMySQL {
				return errors.Errorf("migrations require the %s driver", driverMySQL)
			}

			db, err := connectDB(c.Context, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					log.WithError(err).Error("failed to close database")
				}
			}()
			return migrations.Up(db.DB)
		},
	}
}
