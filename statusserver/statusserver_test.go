package statusserver

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/piclock/piclock/piclock"
	"github.com/stretchr/testify/assert"
)

// noRedirect keeps the client from following the root redirect.
var noRedirect = &http.Client{
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

func TestGetStatus(t *testing.T) {
	status := NewStatusData()
	srv := httptest.NewServer(getStatusReadMux(status, nil))
	defer srv.Close()

	// nothing reported yet
	resp, err := http.Get(srv.URL + "/api/status")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var initial piclock.StatusResponse
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&initial))
	resp.Body.Close()
	assert.Equal(t, "UNKNOWN", initial.Response)
	assert.Equal(t, "no status reported yet", initial.Error)

	// test1
	status.Set(piclock.StatusResponse{
		Response: "OK",
		Alarms:   []piclock.Alarm{{Name: "work", Time: "2026-10-19T06:30:00Z", Enabled: true}},
	})

	resp, err = http.Get(srv.URL + "/api/status")
	assert.Nil(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Nil(t, err)
	assert.JSONEq(t, `{"response": "OK", "alarms": [{"name": "work", "time": "2026-10-19T06:30:00Z", "enabled": true}]}`, string(body))

	// test2
	status.Set(piclock.StatusResponse{Response: "BAD", Error: "calendar unreachable"})

	resp, err = http.Get(srv.URL + "/api/status")
	assert.Nil(t, err)
	body, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Nil(t, err)
	assert.JSONEq(t, `{"response": "BAD", "error": "calendar unreachable"}`, string(body))
}

func TestPostStatusNotAllowed(t *testing.T) {
	srv := httptest.NewServer(getStatusReadMux(NewStatusData(), nil))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/status", "application/json", strings.NewReader(`{}`))
	assert.Nil(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestGetFavicon(t *testing.T) {
	srv := httptest.NewServer(getStatusReadMux(nil, nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/favicon.ico")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetRootRedirects(t *testing.T) {
	srv := httptest.NewServer(getStatusReadMux(nil, nil))
	defer srv.Close()

	resp, err := noRedirect.Get(srv.URL + "/")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, "/static/index.html", resp.Header.Get("Location"))
}

func TestGetHTML(t *testing.T) {
	srv := httptest.NewServer(getStatusReadMux(nil, nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/static/index.html")
	assert.Nil(t, err)
	responseBody, err := io.ReadAll(resp.Body)
	assert.Nil(t, err)
	assert.Equal(t, htmlBody, string(responseBody))
	assert.True(t, strings.Contains(string(responseBody), `id="statusDiv"`))

	resp, err = http.Get(srv.URL + "/static/api.js")
	assert.Nil(t, err)
	responseBody, err = io.ReadAll(resp.Body)
	assert.Nil(t, err)
	assert.Equal(t, apiScript, string(responseBody))
}

func TestBasicAuth(t *testing.T) {
	auth := &basicAuth{user: "piclock", secret: "hunter2", realm: "piclock"}
	srv := httptest.NewServer(getStatusReadMux(NewStatusData(), auth))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/status")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, `Basic realm="piclock"`, resp.Header.Get("WWW-Authenticate"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Unauthorised.\n", string(body))

	req, err := http.NewRequest("GET", srv.URL+"/api/status", nil)
	assert.Nil(t, err)
	req.SetBasicAuth("piclock", "wrong")
	resp, err = http.DefaultClient.Do(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req.SetBasicAuth("piclock", "hunter2")
	resp, err = http.DefaultClient.Do(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func tempSocketPath(t *testing.T) string {
	f, err := os.CreateTemp("", "piclock-unittest-")
	assert.Nil(t, err)
	socketPath := f.Name()
	f.Close()
	os.Remove(socketPath)
	return socketPath
}

func TestPutOnUnixSocket(t *testing.T) {
	socketPath := tempSocketPath(t)

	// start
	status := NewStatusData()
	srv, err := listenOnUnixSocket(status, socketPath)
	assert.Nil(t, err)
	defer os.Remove(socketPath)
	defer srv.Shutdown(context.Background())

	// make a UNIX socket-connected HTTP client
	fakeDial := func(proto, addr string) (conn net.Conn, err error) {
		return net.Dial("unix", socketPath)
	}

	client := http.Client{
		Transport: &http.Transport{
			Dial: fakeDial,
		},
	}

	// test1
	req1, err := http.NewRequest("PUT", "http://foobar/status", strings.NewReader(`{"response": "OK"}`))
	assert.Nil(t, err)
	resp1, err := client.Do(req1)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusAccepted, resp1.StatusCode)
	assert.Equal(t, piclock.StatusResponse{Response: "OK"}, status.Get())

	// test2
	req2, err := http.NewRequest("PUT", "http://foobar/status", strings.NewReader(`{"response": "BAD", "error": "disk full"}`))
	assert.Nil(t, err)
	resp2, err := client.Do(req2)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusAccepted, resp2.StatusCode)
	assert.Equal(t, piclock.StatusResponse{Response: "BAD", Error: "disk full"}, status.Get())

	// broken JSON leaves the status alone
	req3, err := http.NewRequest("PUT", "http://foobar/status", strings.NewReader("213ewqsd"))
	assert.Nil(t, err)
	resp3, err := client.Do(req3)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusBadRequest, resp3.StatusCode)
	assert.Equal(t, piclock.StatusResponse{Response: "BAD", Error: "disk full"}, status.Get())
}

func TestListenOnUnixSocketRemovesStaleSocket(t *testing.T) {
	socketPath := tempSocketPath(t)
	assert.Nil(t, os.WriteFile(socketPath, nil, 0644))
	defer os.Remove(socketPath)

	srv, err := listenOnUnixSocket(NewStatusData(), socketPath)
	assert.Nil(t, err)
	srv.Shutdown(context.Background())
}

func TestReportThroughSocket(t *testing.T) {
	socketPath := tempSocketPath(t)

	status := NewStatusData()
	srv, err := listenOnUnixSocket(status, socketPath)
	assert.Nil(t, err)
	defer os.Remove(socketPath)
	defer srv.Shutdown(context.Background())

	o := ReportOpts{Socket: socketPath, Error: "timeout"}
	o.Args.Response = "degraded"
	assert.Nil(t, o.Execute(nil))
	assert.Equal(t, piclock.StatusResponse{Response: "degraded", Error: "timeout"}, status.Get())

	// the read side serves what was reported
	readSrv := httptest.NewServer(getStatusReadMux(status, nil))
	defer readSrv.Close()

	resp, err := http.Get(readSrv.URL + "/api/status")
	assert.Nil(t, err)
	var published piclock.StatusResponse
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&published))
	assert.Equal(t, "degraded", published.Response)
	assert.Equal(t, "timeout", published.Error)
}

func TestReportWithoutServer(t *testing.T) {
	err := setStatus("/this/socket/should/not/exist.sock", piclock.StatusResponse{Response: "OK"})
	assert.NotNil(t, err)
}
