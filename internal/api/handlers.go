package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/sse"
	"portfolio-backend/internal/stream"
	"portfolio-backend/internal/ws"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("HTTP: failed to encode response: %v", err)
	}
}

// notFound answers with a 200 body carrying the error, which the frontend expects
func notFound(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, models.ErrorResponse{Error: msg})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Portfolio API - " + s.catalog.Profile().Name,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status": "ok",
		"feeds":  stream.Feeds(),
	}
	if s.mirror != nil {
		mirrored := make(map[string]string)
		for feed, state := range s.mirror.States() {
			mirrored[feed] = state.String()
		}
		resp["mirror"] = mirrored
	}
	if s.broker != nil {
		resp["mqtt"] = s.broker.Status()
		if !s.broker.IsConnected() {
			resp["status"] = "degraded"
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Profile())
}

func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Skills())
}

func (s *Server) handleSkillCategory(w http.ResponseWriter, r *http.Request) {
	skills, ok := s.catalog.SkillsByCategory(r.PathValue("category"))
	if !ok {
		notFound(w, "Category not found")
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Projects())
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		notFound(w, "Project not found")
		return
	}
	project, ok := s.catalog.Project(id)
	if !ok {
		notFound(w, "Project not found")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) handleBlog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Blog())
}

func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Pipeline())
}

func (s *Server) handleTerminal(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.terminal.Execute(r.PathValue("command")))
}

// newSession answers 404 itself when the feed is unknown
func (s *Server) newSession(w http.ResponseWriter, feed string) (*stream.Session, bool) {
	session, err := stream.NewSession(feed, s.opts)
	if errors.Is(err, stream.ErrUnknownFeed) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Stream not found"})
		return nil, false
	}
	if err != nil {
		log.Printf("HTTP: failed to create %s session: %v", feed, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Stream unavailable"})
		return nil, false
	}
	return session, true
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	session, ok := s.newSession(w, r.PathValue("feed"))
	if !ok {
		return
	}

	log.Printf("Stream[%s]: SSE client connected from %s", session.Feed, r.RemoteAddr)
	state, err := sse.Serve(w, r, session)
	if err != nil {
		log.Printf("Stream[%s]: %v", session.Feed, err)
		return
	}
	log.Printf("Stream[%s]: SSE stream %s after %d frames", session.Feed, state, session.Frames())
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	session, ok := s.newSession(w, r.PathValue("feed"))
	if !ok {
		return
	}

	log.Printf("Stream[%s]: WebSocket client connected from %s", session.Feed, r.RemoteAddr)
	state, err := ws.Serve(w, r, session)
	if err != nil {
		log.Printf("Stream[%s]: %v", session.Feed, err)
		return
	}
	log.Printf("Stream[%s]: WebSocket stream %s after %d frames", session.Feed, state, session.Frames())
}
