// Package server exposes the route engine as a JSON HTTP API.
//
//	POST /v1/routes          plan a multi-stop route
//	GET  /v1/floors          floors with their areas and transit nodes
//	GET  /v1/floors/path     floor sequence between ?from= and ?to=
//	GET  /healthz            liveness
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/katalvlaran/indoornav/cache"
	"github.com/katalvlaran/indoornav/i18n"
	"github.com/katalvlaran/indoornav/route"
)

// Server serves one planner.
type Server struct {
	planner *route.Planner
	opts    Options
}

// Options configures a Server.
type Options struct {
	Catalog      *i18n.Catalog
	Cache        cache.Cache
	CacheTTL     time.Duration
	Logger       *log.Logger
	Lang         string
	MaxStops     int
	RouteTimeout time.Duration
}

// Option configures a Server.
type Option func(*Options)

// WithCatalog sets the message catalog used for ?lang / "lang".
func WithCatalog(c *i18n.Catalog) Option {
	return func(o *Options) {
		if c != nil {
			o.Catalog = c
		}
	}
}

// WithCache enables route caching with the given expiry.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(o *Options) {
		if c != nil {
			o.Cache = c
			o.CacheTTL = ttl
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithDefaultLang sets the language used when a request names none.
func WithDefaultLang(lang string) Option {
	return func(o *Options) { o.Lang = lang }
}

// WithMaxStops limits the stops of one request; 0 disables the limit.
func WithMaxStops(n int) Option {
	return func(o *Options) { o.MaxStops = n }
}

// WithRouteTimeout bounds the planning time of one request; 0 disables it.
func WithRouteTimeout(d time.Duration) Option {
	return func(o *Options) { o.RouteTimeout = d }
}

// New creates a server for planner.
func New(planner *route.Planner, opts ...Option) *Server {
	o := Options{
		Catalog: i18n.NewCatalog(),
		Cache:   cache.NewNull(),
		Logger:  log.NewWithOptions(io.Discard, log.Options{}),
		Lang:    "en",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{planner: planner, opts: o}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/routes", s.createRoute)
		r.Get("/floors", s.listFloors)
		r.Get("/floors/path", s.floorPath)
	})
	return r
}

// logRequests logs one line per request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.opts.Logger.Debug("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start).Round(time.Microsecond),
			"id", middleware.GetReqID(r.Context()))
	})
}

// cors allows browser front ends on other origins.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
