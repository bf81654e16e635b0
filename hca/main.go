package main

import (
	"os"

	"github.com/openhms/hca-app/hca/hcacli"
	"github.com/sirupsen/logrus"
)

func main() {
	app := hcacli.GetApp()
	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
