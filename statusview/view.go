package statusview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/piclock/piclock/piclock"
)

// Placeholder is displayed until the status request settles.
const Placeholder = "..."

// ErrNoDisplay is returned by Init when the view has nowhere to render to.
var ErrNoDisplay = errors.New("statusview: no display configured")

// Display is the surface the status text is rendered on.
type Display interface {
	SetText(text string) error
}

// View renders the status reported by a piclock status server.
type View struct {
	Display  Display
	Endpoint string // base URL, e.g. http://localhost:8080
	Client   *http.Client
	Logger   *log.Logger

	// Optional basic auth credentials. No header is sent when Username is empty.
	Username string
	Password string
}

// Format renders a status response the way it is shown on a display.
func Format(resp piclock.StatusResponse) string {
	if resp.Error != "" {
		return resp.Response + ": " + resp.Error
	}
	return resp.Response
}

// Init shows the placeholder and issues exactly one status request in the
// background. The returned channel is closed once that request has settled.
//
// If the placeholder can't be shown Init fails and no request is made.
// A failed request is only logged; the display keeps the placeholder.
func (v *View) Init(ctx context.Context) (<-chan struct{}, error) {
	if v.Display == nil {
		return nil, ErrNoDisplay
	}

	err := v.Display.SetText(Placeholder)
	if err != nil {
		return nil, fmt.Errorf("Init: SetText: %s", err.Error())
	}

	done := make(chan struct{})
	go func() {
		defer close(done)

		resp, err := v.fetch(ctx)
		if err != nil {
			v.logger().Printf("status request failed: %s", err.Error())
			return
		}

		v.logger().Printf("status: %+v", *resp)
		err = v.Display.SetText(Format(*resp))
		if err != nil {
			v.logger().Printf("failed to display status: %s", err.Error())
		}
	}()

	return done, nil
}

func (v *View) fetch(ctx context.Context) (*piclock.StatusResponse, error) {
	url := strings.TrimSuffix(v.Endpoint, "/") + piclock.StatusPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	if v.Username != "" {
		req.SetBasicAuth(v.Username, v.Password)
	}

	resp, err := v.client().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("response status code was %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// the whole body must be one JSON object; a bare null leaves result nil
	var result *piclock.StatusResponse
	err = json.Unmarshal(data, &result)
	if err != nil {
		return nil, fmt.Errorf("malformed status: %s", err.Error())
	}
	if result == nil {
		return nil, fmt.Errorf("malformed status: %q", string(data))
	}

	return result, nil
}

func (v *View) client() *http.Client {
	if v.Client == nil {
		return http.DefaultClient
	}
	return v.Client
}

func (v *View) logger() *log.Logger {
	if v.Logger == nil {
		return log.Default()
	}
	return v.Logger
}
