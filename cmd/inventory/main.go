package main

import (
	"os"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const (
	appID      = "inventory"
	appVersion = "1.0.0"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	decimal.MarshalJSONWithoutQuotes = true

	app := &cli.App{
		Name:    appID,
		Usage:   "restaurant inventory service",
		Version: appVersion,
		Commands: []*cli.Command{
			serviceCommand(),
			migrateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
