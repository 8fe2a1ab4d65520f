// Package httpapi exposes the render entry points over HTTP via chi.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/eslider/mimejson/internal/auditlog"
	"github.com/eslider/mimejson/internal/render"
	"github.com/eslider/mimejson/internal/store"
)

// Config wires a Store and an optional audit Log into the router.
type Config struct {
	Store  store.Store
	Log    *auditlog.Log
	Limits render.Limits
}

// NewRouter builds the chi router exposing /v1/render and /v1/parts/{id}.
func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	h := &handler{cfg: cfg}
	r.Get("/v1/render", h.render)
	r.Get("/v1/parts/{id}", h.part)

	return r
}
