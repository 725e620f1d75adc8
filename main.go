package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/piclock/piclock/piclock"
)

func main() {
	// a missing .env is fine, env-backed options just keep their defaults
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %s\n", err.Error())
	}

	parser := flags.NewParser(&opts, flags.Default)
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		logFile := piclock.SetupLogging(opts.LogFile)
		if logFile != nil {
			defer logFile.Close()
		}
		return command.Execute(args)
	}

	_, err = parser.Parse()
	if err != nil {
		if flagserr, ok := err.(*flags.Error); !ok || flagserr.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
		}
		os.Exit(1)
	}
}
