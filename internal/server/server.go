package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spacesedan/personaforge/internal/jobs"
	"github.com/spacesedan/personaforge/internal/persona"
)

// ArtifactResolver maps an artifact filename to a readable path; the file
// store implements it. Download endpoints are disabled when nil (DynamoDB
// backend).
type ArtifactResolver interface {
	ResolveArtifact(name string) (string, error)
}

// ArtifactLookup finds the newest cached artifact reference per identity.
type ArtifactLookup interface {
	LatestArtifact(ctx context.Context, username string) (string, bool)
}

// Server is the HTTP front end: submission, polling, reset and artifact
// retrieval. Handlers only read status snapshots; the worker goroutine is
// the sole status writer.
type Server struct {
	Tracker      *jobs.Tracker
	Orchestrator *persona.Orchestrator
	Artifacts    ArtifactResolver
	Cache        ArtifactLookup
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("GET /progress", s.handleProgress)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("POST /reset", s.handleReset)
	mux.HandleFunc("GET /download/{filename}", s.handleDownload)
	mux.HandleFunc("GET /persona_content/{filename}", s.handlePersonaContent)
	mux.HandleFunc("GET /sentiment_data/{filename}", s.handleSentimentData)
	mux.HandleFunc("GET /api/artifact", s.handleArtifactLookup)
	return mux
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		writeError(w, http.StatusBadRequest, "Username is required")
		return
	}

	if _, err := s.Tracker.Begin(username); err != nil {
		if errors.Is(err, jobs.ErrAlreadyRunning) {
			writeError(w, http.StatusConflict,
				"Generation already in progress. Please wait for it to complete or refresh the page.")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// One worker per job; request handling stays free for pollers. The
	// worker owns lock release through the orchestrator.
	go func() {
		if _, err := s.Orchestrator.Run(context.Background(), username); err != nil {
			slog.Error("[Server] Generation failed",
				slog.String("username", username),
				slog.String("error", err.Error()))
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{
		"status":  "started",
		"message": "Started generating persona for " + username,
	})
}

func (s *Server) handleProgress(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Tracker.Snapshot())
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	snapshot := s.Tracker.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"lock":        snapshot.LockHeld,
		"stage":       snapshot.Stage,
		"completed":   snapshot.Completed,
		"has_error":   snapshot.Error != "",
		"error":       snapshot.Error,
		"message":     snapshot.Message,
		"progress":    snapshot.Progress,
		"output_file": snapshot.OutputRef,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	prev := s.Tracker.Snapshot()
	slog.Info("[Server] Resetting generation state",
		slog.String("previous_stage", string(prev.Stage)),
		slog.Bool("lock", prev.LockHeld))

	s.Tracker.Reset()
	s.Orchestrator.InvalidateModel()

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "reset",
		"message": "Generation state has been reset",
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	path, ok := s.resolveArtifact(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename="+r.PathValue("filename"))
	http.ServeFile(w, r, path)
}

func (s *Server) handlePersonaContent(w http.ResponseWriter, r *http.Request) {
	path, ok := s.resolveArtifact(w, r)
	if !ok {
		return
	}
	content, err := os.ReadFile(path)
	if err != nil {
		writeError(w, http.StatusNotFound, "File not found: "+r.PathValue("filename"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"content": string(content)})
}

// handleSentimentData serves the raw data artifact, which carries the full
// sentiment profile alongside the scraped records.
func (s *Server) handleSentimentData(w http.ResponseWriter, r *http.Request) {
	path, ok := s.resolveArtifact(w, r)
	if !ok {
		return
	}
	content, err := os.ReadFile(path)
	if err != nil {
		writeError(w, http.StatusNotFound, "File not found: "+r.PathValue("filename"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		slog.Error("[Server] Failed to write sentiment data response", slog.String("error", err.Error()))
	}
}

func (s *Server) handleArtifactLookup(w http.ResponseWriter, r *http.Request) {
	if s.Cache == nil {
		writeError(w, http.StatusNotFound, "artifact cache not configured")
		return
	}
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		writeError(w, http.StatusBadRequest, "Username is required")
		return
	}
	ref, found := s.Cache.LatestArtifact(r.Context(), username)
	if !found {
		writeError(w, http.StatusNotFound, "no recent artifact for "+username)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"username": username, "artifact": ref})
}

func (s *Server) resolveArtifact(w http.ResponseWriter, r *http.Request) (string, bool) {
	if s.Artifacts == nil {
		writeError(w, http.StatusNotFound, "artifact downloads not available for this storage backend")
		return "", false
	}
	path, err := s.Artifacts.ResolveArtifact(r.PathValue("filename"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return "", false
	}
	return path, true
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("[Server] Failed to encode response", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}
