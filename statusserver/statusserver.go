package statusserver

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/piclock/piclock/piclock"
)

// Opts contains command line parameters for the 'serve' command
type Opts struct {
	Config string `short:"c" long:"config" description:"YAML config file"`
	Listen string `short:"l" long:"listen" description:"Address on which to listen (default :8080)"`
	Socket string `long:"socket" env:"PICLOCK_SOCKET" description:"UNIX socket accepting status reports"`
	User   string `short:"u" long:"user" description:"Basic auth user (default piclock)"`
	Secret string `short:"s" long:"secret" env:"PICLOCK_SECRET" description:"Basic auth secret, auth is disabled if empty"`
	Realm  string `long:"realm" description:"Basic auth realm (default piclock)"`
}

// StatusData holds the status currently published on /api/status.
type StatusData struct {
	sync.RWMutex
	current piclock.StatusResponse
}

// NewStatusData returns the status shown before anything has been reported.
func NewStatusData() *StatusData {
	return &StatusData{
		current: piclock.StatusResponse{Response: "UNKNOWN", Error: "no status reported yet"},
	}
}

func (s *StatusData) Get() piclock.StatusResponse {
	s.RLock()
	defer s.RUnlock()
	return s.current
}

func (s *StatusData) Set(status piclock.StatusResponse) {
	s.Lock()
	defer s.Unlock()
	s.current = status
}

// Execute is the function ran when the 'serve' command is used
func (o *Opts) Execute(args []string) error {
	cfg, err := o.config()
	if err != nil {
		return err
	}

	status := NewStatusData()

	socketSrv, err := listenOnUnixSocket(status, cfg.Socket)
	if err != nil {
		return err
	}
	defer os.Remove(cfg.Socket)

	var auth *basicAuth
	if cfg.Secret != "" {
		auth = &basicAuth{user: cfg.User, secret: cfg.Secret, realm: cfg.Realm}
	} else {
		log.Println("No secret configured, basic auth is disabled")
	}

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: getStatusReadMux(status, auth),
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Starting piclock status server on '%s'", cfg.Listen)
		serveErr <- srv.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err = <-serveErr:
	case <-ctx.Done():
		log.Println("Shutting down piclock status server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
	socketSrv.Shutdown(shutdownCtx)

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func getStatusReadMux(status *StatusData, auth *basicAuth) *mux.Router {
	r := mux.NewRouter()

	if auth != nil {
		r.Use(auth.middleware)
	}

	r.HandleFunc(piclock.StatusPath, func(w http.ResponseWriter, r *http.Request) {
		data, err := json.Marshal(status.Get())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}).Methods("GET")

	r.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found.", http.StatusNotFound)
	})

	r.HandleFunc("/static/index.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(htmlBody))
		log.Printf("Serving the status HTML page to '%s'", r.RemoteAddr)
	}).Methods("GET")

	r.HandleFunc("/static/api.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		w.Write([]byte(apiScript))
	}).Methods("GET")

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/static/index.html", http.StatusMovedPermanently)
	})

	return r
}

func getStatusWriteMux(status *StatusData) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		var newStatus piclock.StatusResponse
		err := json.NewDecoder(r.Body).Decode(&newStatus)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		status.Set(newStatus)
		log.Printf("Status changed to '%s'", newStatus.Response)
		w.WriteHeader(http.StatusAccepted)
	}).Methods("PUT")

	return r
}

// listenOnUnixSocket starts accepting status reports on socketPath. A stale
// socket left behind by a previous run is removed first.
func listenOnUnixSocket(status *StatusData, socketPath string) (*http.Server, error) {
	err := os.Remove(socketPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{Handler: getStatusWriteMux(status)}
	go func() {
		err := srv.Serve(listener)
		if err != nil && err != http.ErrServerClosed {
			log.Printf("status socket: %s", err.Error())
		}
	}()

	return srv, nil
}
