package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eslider/mimejson/internal/auditlog"
	"github.com/eslider/mimejson/internal/render"
)

type handler struct {
	cfg Config
}

func (h *handler) render(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "missing key", http.StatusBadRequest)
		return
	}
	includeContent := r.URL.Query().Get("includeContent") != "false"

	start := time.Now()
	data, err := h.cfg.Store.Fetch(r.Context(), key)
	if err != nil {
		h.logRecord(auditlog.Entry{Operation: "render", SourceKey: key, Err: err, Duration: time.Since(start)})
		http.Error(w, "message not found", http.StatusNotFound)
		return
	}

	out, err := render.RenderMessage(data, includeContent, h.cfg.Limits)
	entry := auditlog.Entry{Operation: "render", SourceKey: key, ResultSize: len(out), Duration: time.Since(start), Err: err}
	h.logRecord(entry)
	if err != nil {
		http.Error(w, "render failed", http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(out))
}

func (h *handler) part(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	contentType := r.URL.Query().Get("contentType")
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if key == "" || contentType == "" || err != nil {
		http.Error(w, "missing key, contentType, or invalid id", http.StatusBadRequest)
		return
	}

	start := time.Now()
	data, err := h.cfg.Store.Fetch(r.Context(), key)
	if err != nil {
		h.logRecord(auditlog.Entry{Operation: "extract", SourceKey: key, PartID: &id, ContentType: contentType, Err: err, Duration: time.Since(start)})
		http.Error(w, "message not found", http.StatusNotFound)
		return
	}

	out, err := render.ExtractPart(data, id, contentType, h.cfg.Limits)
	entry := auditlog.Entry{Operation: "extract", SourceKey: key, PartID: &id, ContentType: contentType, ResultSize: len(out), Duration: time.Since(start), Err: err}
	h.logRecord(entry)
	if err != nil {
		http.Error(w, "extract failed", http.StatusUnprocessableEntity)
		return
	}
	if out == nil {
		http.Error(w, "part not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(out)
}

func (h *handler) logRecord(e auditlog.Entry) {
	if h.cfg.Log == nil {
		return
	}
	_ = h.cfg.Log.Record(e)
}
