package statusview

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Opts contains command line parameters for the 'status' command
type Opts struct {
	Endpoint string `short:"e" long:"endpoint" env:"PICLOCK_ENDPOINT" description:"Base URL of the status server"`
	Display  string `short:"d" long:"display" choice:"terminal" choice:"device" choice:"notify" default:"terminal" description:"Where to show the status"`
	Device   string `long:"device" default:"/dev/piclock-lcd0" description:"Device node used by the 'device' display"`
	User     string `short:"u" long:"user" env:"PICLOCK_USER" description:"Basic auth user"`
	Secret   string `short:"s" long:"secret" env:"PICLOCK_SECRET" description:"Basic auth secret"`
}

// Execute is the function ran when the 'status' command is used
func (o *Opts) Execute(args []string) error {
	display, err := o.newDisplay()
	if err != nil {
		return err
	}

	endpoint, src := getEndpoint(o.Endpoint)
	logEndpointDetection(endpoint, src)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	view := View{
		Display:  display,
		Endpoint: endpoint,
		Username: o.User,
		Password: o.Secret,
	}

	done, err := view.Init(ctx)
	if err != nil {
		return err
	}

	<-done
	return nil
}

func (o *Opts) newDisplay() (Display, error) {
	switch o.Display {
	case "terminal":
		return &WriterDisplay{W: os.Stdout}, nil
	case "device":
		return &DeviceDisplay{Path: o.Device}, nil
	case "notify":
		return NewNotifyDisplay()
	}

	return nil, fmt.Errorf("unknown display '%s'", o.Display)
}
