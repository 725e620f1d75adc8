package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
)

// VersionTag is set at link time: -ldflags "-X main.VersionTag=v3"
var VersionTag string

type versionOpts struct {
}

func (o *versionOpts) Execute(args []string) error {
	printVersion(os.Stdout)
	return nil
}

func printVersion(w io.Writer) {
	if VersionTag == "" {
		fmt.Fprintf(w, "No version information available. This is a development binary (%s).\n", runtime.Version())
		return
	}

	fmt.Fprintf(w, "piclock release %s (%s)\n", VersionTag, runtime.Version())
}
