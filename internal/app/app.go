// Package app is the web application served from the edge: a couple of pages and a form action.
package app

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/isometry/cloudfront-edge-app/internal/helpers"
)

// ModeDevelopment renders error details in responses.
const ModeDevelopment = "development"

// DefaultAnswers are the SHA-1 hashes of the accepted answers to the actions demo.
var DefaultAnswers = []string{
	"4fa6024f12494d3a99d8bda9b7a55f7d140f328a",
	"ce3659ad235ca6d1e12dec21465aff3f9a62bb8c",
	"bd111dcb4b343de4ec0a79d2d5ec55a3919c79c4",
}

// Option configures a Build.
type Option func(*Build)

// Build holds everything needed to create the application handler.
type Build struct {
	logger  *slog.Logger
	answers []string
}

// NewBuild creates a new application build.
func NewBuild(opts ...Option) *Build {
	_inst := &Build{
		logger:  helpers.NewNoopLogger(),
		answers: DefaultAnswers,
	}
	for _, opt := range opts {
		opt(_inst)
	}
	return _inst
}

// WithLogger sets the logger instance for the application.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Build) {
		b.logger = logger
	}
}

// WithAnswers replaces the accepted answer hashes. An empty list keeps the defaults.
func WithAnswers(hashes []string) Option {
	return func(b *Build) {
		if len(hashes) > 0 {
			b.answers = hashes
		}
	}
}

// Handler returns the application router for mode.
func (b *Build) Handler(mode string) http.Handler {
	a := &application{
		logger:  b.logger.With("mode", mode),
		answers: b.answers,
		debug:   mode == ModeDevelopment,
	}

	r := mux.NewRouter()
	r.Use(a.requestID)
	r.HandleFunc("/", a.index).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/demos/actions", a.actionsPage).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/demos/actions", a.action).Methods(http.MethodPost)
	r.HandleFunc("/demos/correct", a.correct).Methods(http.MethodGet, http.MethodHead)
	// middlewares only run on matched routes
	r.NotFoundHandler = a.requestID(http.HandlerFunc(a.notFound))
	r.MethodNotAllowedHandler = a.requestID(http.HandlerFunc(a.methodNotAllowed))
	return r
}

type application struct {
	logger  *slog.Logger
	answers []string
	debug   bool
}

func (a *application) index(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, "index", page{Title: "Edge App"})
}

func (a *application) correct(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, "correct", page{Title: "Correct!"})
}

func (a *application) notFound(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusNotFound, "notfound", page{Title: "Not Found"})
}

func (a *application) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
