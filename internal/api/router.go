package api

import "net/http"

// Router wires HTTP/WS handlers for the server.
type Router struct {
	mux *http.ServeMux
}

// NewRouter constructs router with provided handlers.
func NewRouter(server *Server) *Router {
	mux := http.NewServeMux()
	server.registerHandlers(mux)
	return &Router{mux: mux}
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r == nil || r.mux == nil {
		http.NotFound(w, req)
		return
	}
	r.mux.ServeHTTP(w, req)
}

func (s *Server) registerHandlers(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /profile", s.handleProfile)
	mux.HandleFunc("GET /skills", s.handleSkills)
	mux.HandleFunc("GET /skills/{category}", s.handleSkillCategory)
	mux.HandleFunc("GET /projects", s.handleProjects)
	mux.HandleFunc("GET /projects/{id}", s.handleProject)
	mux.HandleFunc("GET /blog", s.handleBlog)
	mux.HandleFunc("GET /pipeline", s.handlePipeline)

	mux.HandleFunc("GET /data/sample", s.handleSampleData)
	mux.HandleFunc("GET /data/realtime-snapshot", s.handleRealtimeSnapshot)

	mux.HandleFunc("GET /terminal/{command...}", s.handleTerminal)

	mux.HandleFunc("GET /stream/{feed}", s.handleStream)
	mux.HandleFunc("GET /ws/{feed}", s.handleWebSocket)
}
