package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/statusgrid/internal/domain"
	"github.com/hamed0406/statusgrid/internal/history"
	apimw "github.com/hamed0406/statusgrid/internal/httpapi/middleware"
)

// Server serves the rendered status artifacts plus a JSON snapshot of the
// latest outcome per configured target.
type Server struct {
	Logger  *zap.Logger
	Store   *history.Store
	Targets []domain.Target
	DocsDir string
}

func NewServer(l *zap.Logger, store *history.Store, targets []domain.Target, docsDir string) *Server {
	return &Server{Logger: l, Store: store, Targets: targets, DocsDir: docsDir}
}

func (s *Server) Router(apiKeys []string) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(apimw.RequireKey(apiKeys))
		r.Get("/api/status", s.handleStatus)
		r.Get("/api/results", s.handleResults)
	})

	// the rendered status page and charts; the raw data files under the
	// docs dir sit behind the same key check as /api/results so the static
	// tree cannot be used to sidestep it
	fs := http.FileServer(http.Dir(s.DocsDir))
	r.With(apimw.RequireKey(apiKeys)).Handle("/data/*", fs)
	r.Handle("/*", fs)

	return r
}

type statusEntry struct {
	Target    string     `json:"target"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	CheckedAt *time.Time `json:"checked_at,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	latest := s.Store.Load().Latest()

	out := make([]statusEntry, 0, len(s.Targets))
	for _, t := range s.Targets {
		e := statusEntry{Target: string(t.ID), Name: t.Name, Status: "Unknown"}
		if o, ok := latest[t.ID]; ok {
			e.Status = string(o.Outcome)
			ts := o.Timestamp
			e.CheckedAt = &ts
		}
		out = append(out, e)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.Logger.Warn("status_encode_error", zap.Error(err))
	}
}

// handleResults serves the persisted history file verbatim.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	raw, err := history.ReadRaw(s.Store.Path)
	if err != nil {
		http.Error(w, "no results", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}
