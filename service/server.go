package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/snesdev/zealgo/assembler"
	"github.com/snesdev/zealgo/emitter"
	"github.com/snesdev/zealgo/parser"
	"github.com/snesdev/zealgo/system"
)

// Server is the assemble-as-a-service HTTP+WebSocket wrapper around the core pipeline.
type Server struct {
	broadcaster *Broadcaster
	mux         *http.ServeMux
	server      *http.Server
	port        int
}

// NewServer builds a Server listening on port once Start is called.
func NewServer(port int) *Server {
	s := &Server{
		broadcaster: NewBroadcaster(),
		mux:         http.NewServeMux(),
		port:        port,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/assemble", s.handleAssemble)
	s.mux.HandleFunc("/ws", s.handleWebSocket)
}

// Handler returns the HTTP handler with CORS middleware applied.
func (s *Server) Handler() http.Handler {
	return s.corsMiddleware(s.mux)
}

// Start runs the HTTP server, blocking until it stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("zealgo assemble service starting on http://127.0.0.1:%d", s.port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server and closes the broadcaster.
func (s *Server) Shutdown(ctx context.Context) error {
	s.broadcaster.Close()
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Broadcaster returns the server's diagnostic broadcaster (exposed for tests).
func (s *Server) Broadcaster() *Broadcaster {
	return s.broadcaster
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if isAllowedOrigin(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isAllowedOrigin(origin string) bool {
	if origin == "" {
		return true
	}
	return strings.HasPrefix(origin, "http://localhost") ||
		strings.HasPrefix(origin, "https://localhost") ||
		strings.HasPrefix(origin, "http://127.0.0.1") ||
		strings.HasPrefix(origin, "https://127.0.0.1")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"subscribers": s.broadcaster.SubscriptionCount(),
		"time":        time.Now().Format(time.RFC3339),
	})
}

// assembleRequest is the POST /assemble body: a single named source, assembled standalone
// (includes referencing any other path fail — there is only one file in this source set).
type assembleRequest struct {
	SessionID string `json:"sessionId"`
	Filename  string `json:"filename"`
	Source    string `json:"source"`
	CPU       string `json:"cpu"`
	MapMode   string `json:"mapMode"`
}

type assembleResponse struct {
	OK          bool              `json:"ok"`
	BytesHex    string            `json:"bytesHex,omitempty"`
	Diagnostics []json.RawMessage `json:"diagnostics"`
}

func (s *Server) handleAssemble(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req assembleRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Filename == "" {
		req.Filename = "input.asm"
	}

	target := system.SNES // the only system definition this service currently hosts
	source := newSingleFileSource(req.Filename, req.Source)

	p := parser.NewParser(source, target)
	nodes, perrs := p.ParseFile(req.Filename)

	var diagnostics []json.RawMessage
	emit := func(list *parser.ErrorList) {
		for _, m := range list.All() {
			s.broadcaster.Broadcast(DiagnosticEvent{
				SessionID: req.SessionID,
				Severity:  m.Severity.String(),
				Path:      m.Token.Pos.Path,
				Line:      m.Token.Pos.Line,
				Column:    m.Token.Pos.StartCol,
				Message:   m.Message,
			})
			raw, _ := json.Marshal(map[string]interface{}{
				"severity": m.Severity.String(),
				"path":     m.Token.Pos.Path,
				"line":     m.Token.Pos.Line,
				"column":   m.Token.Pos.StartCol,
				"message":  m.Message,
			})
			diagnostics = append(diagnostics, raw)
		}
	}
	emit(perrs)

	if perrs.HasErrors() {
		writeJSON(w, http.StatusOK, assembleResponse{OK: false, Diagnostics: diagnostics})
		return
	}

	res, aerrs := assembler.Assemble(nodes, target, source)
	emit(aerrs)
	if aerrs.HasErrors() {
		writeJSON(w, http.StatusOK, assembleResponse{OK: false, Diagnostics: diagnostics})
		return
	}

	sink := newBufferSink()
	mode := emitter.ParseMapMode(req.MapMode)
	if err := emitter.Emit(res, mode, sink, source); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("emit failed: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, assembleResponse{
		OK:          true,
		BytesHex:    hex.EncodeToString(sink.data),
		Diagnostics: diagnostics,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("error encoding json: %v", err)
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

func readJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1024*1024))
	return decoder.Decode(v)
}
