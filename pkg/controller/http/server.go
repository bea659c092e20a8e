package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
	"github.com/mnemo-lab/mnemo/pkg/usecase"
	"github.com/mnemo-lab/mnemo/pkg/utils/errutil"
	"github.com/mnemo-lab/mnemo/pkg/utils/logging"
)

// Server exposes the capture and retrieval pipeline over HTTP
type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", s.handleListProjects)
		r.Route("/projects/{projectID}", func(r chi.Router) {
			r.Post("/capture", s.handleCapture)
			r.Get("/search", s.handleSearch)
			r.Post("/index/rebuild", s.handleRebuild)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

type captureRequest struct {
	Exchanges []*model.Exchange `json:"exchanges"`
}

func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	projectID := types.ProjectID(chi.URLParam(r, "projectID"))

	var req captureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w,
			goerr.Wrap(usecase.ErrInvalidPayload, "invalid request body"),
			http.StatusBadRequest)
		return
	}

	result, err := s.uc.Capture(r.Context(), projectID, req.Exchanges)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	writeJSON(w, r, result)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	projectID := types.ProjectID(chi.URLParam(r, "projectID"))
	query := r.URL.Query().Get("q")

	result, err := s.uc.Search(r.Context(), projectID, query)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	writeJSON(w, r, result)
}

func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	projectID := types.ProjectID(chi.URLParam(r, "projectID"))

	result, err := s.uc.RebuildIndex(r.Context(), projectID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	writeJSON(w, r, result)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	type projectResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	type response struct {
		Projects []projectResponse `json:"projects"`
	}

	projects := s.uc.Projects()
	resp := response{
		Projects: make([]projectResponse, len(projects)),
	}
	for i, p := range projects {
		resp.Projects[i] = projectResponse{
			ID:   string(p.ID),
			Name: p.Name,
		}
	}

	writeJSON(w, r, resp)
}

// statusFor maps boundary sentinel errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidPayload), errors.Is(err, usecase.ErrMissingQuery):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w,
			goerr.Wrap(err, "failed to marshal response"),
			http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data) //nolint:errcheck // header already committed
}
