package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/leapstack-labs/sqljudge/internal/compare"
	"github.com/leapstack-labs/sqljudge/internal/relgraph"
)

type compareRequest struct {
	Predicted string `json:"predicted"`
	Reference string `json:"reference"`
}

type pathsRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type pathsResponse struct {
	Source string              `json:"source"`
	Target string              `json:"target"`
	Paths  []relgraph.JoinPath `json:"paths"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Reference) == "" {
		s.writeError(w, http.StatusBadRequest, "reference SQL is required")
		return
	}

	report := compare.Compare(req.Predicted, req.Reference)
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	var req pathsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Source == "" || req.Target == "" {
		s.writeError(w, http.StatusBadRequest, "source and target tables are required")
		return
	}
	if s.graph == nil {
		s.writeError(w, http.StatusConflict, "no schema loaded")
		return
	}
	if !s.graph.HasTable(req.Source) {
		s.writeError(w, http.StatusNotFound, "unknown table: "+req.Source)
		return
	}
	if !s.graph.HasTable(req.Target) {
		s.writeError(w, http.StatusNotFound, "unknown table: "+req.Target)
		return
	}

	paths, err := s.graph.FindPaths(req.Source, req.Target)
	if err != nil {
		s.logger.Error("path search failed", slog.String("error", err.Error()))
		s.writeError(w, http.StatusInternalServerError, "path search failed")
		return
	}

	s.writeJSON(w, http.StatusOK, pathsResponse{
		Source: req.Source,
		Target: req.Target,
		Paths:  paths,
	})
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	if s.snapshot == nil {
		s.writeError(w, http.StatusNotFound, "no schema loaded")
		return
	}
	s.writeJSON(w, http.StatusOK, s.snapshot)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
