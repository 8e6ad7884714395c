package main

import (
	"fmt"

	cli "gopkg.in/urfave/cli.v1"
)

const version = "1.0.0"

var commands = cli.Commands{
	cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Launch the vesuvius-sentinel webserver",
		Action:  serveAction,
	},
	cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Print the version number of the broker CLI",
		Action:  versionAction,
	},
	cli.Command{
		Name:    "ingest",
		Aliases: []string{"i"},
		Usage:   "Update the local scene index from the Sentinel-2 scene list on a schedule",
		Action:  ingestScheduleAction,
	},
	cli.Command{
		Name:   "ingest_once",
		Usage:  "Update the local scene index from the Sentinel-2 scene list a single time",
		Action: ingestOnceAction,
	},
	cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Update database schema",
		Action:  migrateDatabaseAction,
	},
	cli.Command{
		Name:    "report",
		Aliases: []string{"r"},
		Usage:   "Print a scene table and write a composite preview figure for an area of interest",
		Flags:   reportFlags,
		Action:  reportAction,
	},
}

func createCliApp() (app *cli.App) {
	app = cli.NewApp()
	app.Name = "vesuvius-sentinel"
	app.Usage = "Launch a vesuvius-sentinel process"
	app.Commands = commands
	return
}

func versionAction(*cli.Context) {
	fmt.Println(version)
}
