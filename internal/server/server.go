// Package server exposes the interview loop over HTTP. It is a thin JSON
// layer: every handler decodes, delegates to the orchestrator and maps the
// error taxonomy onto status codes.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sharvarianand/intervuex/internal/interview"
	"github.com/sharvarianand/intervuex/internal/session"
)

// Server handles the interview HTTP API.
type Server struct {
	orchestrator *session.Orchestrator
	logger       *zap.Logger
}

func New(orchestrator *session.Orchestrator, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{orchestrator: orchestrator, logger: logger}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /interview/start", s.handleStart)
	mux.HandleFunc("GET /interview/{id}/question", s.handleCurrentQuestion)
	mux.HandleFunc("POST /interview/{id}/answer", s.handleAnswer)
	mux.HandleFunc("POST /interview/{id}/signals", s.handleSignals)
	mux.HandleFunc("POST /interview/{id}/end", s.handleEnd)
	mux.HandleFunc("GET /interview/{id}/report", s.handleReport)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req session.StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.orchestrator.Start(r.Context(), req)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCurrentQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := s.orchestrator.CurrentQuestion(r.PathValue("id"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Answer == "" {
		s.writeError(w, http.StatusBadRequest, "answer is required")
		return
	}

	next, err := s.orchestrator.SubmitAnswer(r.Context(), r.PathValue("id"), req.Answer)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, next)
}

func (s *Server) handleSignals(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Signals []interview.Signal `json:"signals"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.orchestrator.IngestSignals(r.PathValue("id"), req.Signals); err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusAccepted, map[string]string{"status": "recorded"})
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	report, err := s.orchestrator.End(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.orchestrator.Report(r.PathValue("id"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeFailure maps the session error taxonomy onto HTTP status codes.
func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrAlreadyEnded), errors.Is(err, session.ErrInvalidState):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, interview.ErrIndexMismatch):
		s.logger.Error("session state corrupted", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "session state corrupted")
	default:
		s.logger.Error("request failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("response encoding failed", zap.Error(err))
	}
}
