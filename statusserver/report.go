package statusserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/piclock/piclock/piclock"
)

// ReportOpts contains command line parameters for the 'report' command
type ReportOpts struct {
	Socket string   `long:"socket" env:"PICLOCK_SOCKET" description:"Status server socket (default /var/run/piclock-status.sock)"`
	Error  string   `short:"e" long:"error" description:"Error detail shown after the status"`
	Alarms []string `short:"a" long:"alarm" value-name:"NAME=TIME" description:"Upcoming alarm, TIME in RFC 3339; may be repeated"`
	Args   struct {
		Response string `positional-arg-name:"status" required:"yes"`
	} `positional-args:"yes"`
}

// Execute is the function ran when the 'report' command is used
func (o *ReportOpts) Execute(args []string) error {
	alarms, err := parseAlarms(o.Alarms)
	if err != nil {
		return err
	}

	socketPath := o.Socket
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}

	return setStatus(socketPath, piclock.StatusResponse{
		Response: o.Args.Response,
		Error:    o.Error,
		Alarms:   alarms,
	})
}

// parseAlarms turns NAME=TIME pairs into enabled alarms.
func parseAlarms(values []string) ([]piclock.Alarm, error) {
	var alarms []piclock.Alarm
	for _, v := range values {
		name, when, ok := strings.Cut(v, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("alarm '%s' is not in NAME=TIME form", v)
		}

		t, err := time.Parse(time.RFC3339, when)
		if err != nil {
			return nil, fmt.Errorf("alarm '%s': %s", name, err.Error())
		}

		alarms = append(alarms, piclock.Alarm{Name: name, Time: t.Format(time.RFC3339), Enabled: true})
	}

	return alarms, nil
}

func setStatus(socketPath string, status piclock.StatusResponse) error {
	fakeDial := func(proto, addr string) (conn net.Conn, err error) {
		return net.Dial("unix", socketPath)
	}

	client := http.Client{
		Transport: &http.Transport{
			Dial: fakeDial,
		},
	}

	data, err := json.Marshal(&status)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("PUT", "http://statusserver/status", bytes.NewReader(data))
	if err != nil {
		return err
	}
	response, err := client.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusAccepted {
		return fmt.Errorf("setStatus: return code is %d", response.StatusCode)
	}

	return nil
}
