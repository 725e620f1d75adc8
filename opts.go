package main

import (
	"github.com/piclock/piclock/statusserver"
	"github.com/piclock/piclock/statusview"
)

var opts struct {
	LogFile string `long:"log-file" env:"PICLOCK_LOG_FILE" description:"Also write logs to this file, rotated"`

	Status     statusview.Opts         `command:"status" description:"Show the clock's status"`
	Serve      statusserver.Opts       `command:"serve" description:"Serve the status API and page"`
	Report     statusserver.ReportOpts `command:"report" description:"Report a new status to a running server"`
	SelfUpdate selfupdateOpts          `command:"selfupdate" description:"Install the latest piclock release"`
	Version    versionOpts             `command:"version" description:"Print the version"`
}
