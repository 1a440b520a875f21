// Package documents exposes loaded documents and interpolation queries over
// HTTP.
package documents

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/spf13/cast"

	"github.com/kilianp07/perfmap/app"
	"github.com/kilianp07/perfmap/core/grid"
)

// Store is the subset of app.Service used by the handlers.
type Store interface {
	List() []*app.Loaded
	Get(id string) (*app.Loaded, error)
	Query(id, mapName string, target []float64, methods ...grid.InterpolationMethod) (app.QueryResult, error)
}

// NewHandler returns the document API:
//
//	GET /api/documents
//	GET /api/documents/{id}
//	GET /api/documents/{id}/query?map=...&target=x1,x2,...&method=linear[,cubic...]
//
// Requests must include an Authorization header with "Bearer <token>" when
// token is non-empty.
func NewHandler(store Store, token string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/documents", func(w http.ResponseWriter, r *http.Request) {
		loaded := store.List()
		out := make([]app.Description, len(loaded))
		for i, l := range loaded {
			out[i] = app.Describe(l)
		}
		writeJSON(w, out)
	})
	mux.HandleFunc("GET /api/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		l, err := store.Get(r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, app.Describe(l))
	})
	mux.HandleFunc("GET /api/documents/{id}/query", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		target, err := parseTarget(q.Get("target"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		methods, err := parseMethods(q.Get("method"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res, err := store.Query(r.PathValue("id"), q.Get("map"), target, methods...)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, res)
	})
	if token == "" {
		return mux
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

func parseTarget(s string) ([]float64, error) {
	if s == "" {
		return nil, errors.New("target is required")
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := cast.ToFloat64E(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseMethods(s string) ([]grid.InterpolationMethod, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]grid.InterpolationMethod, len(parts))
	for i, p := range parts {
		m, err := grid.ParseInterpolationMethod(p)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrNotLoaded), errors.Is(err, app.ErrUnknownMap):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, grid.ErrDimension), errors.Is(err, grid.ErrMethodCount),
		errors.Is(err, grid.ErrNaNTarget), errors.Is(err, grid.ErrNonFiniteTarget),
		errors.Is(err, grid.ErrNonFiniteResult), errors.Is(err, grid.ErrOutOfBounds):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
