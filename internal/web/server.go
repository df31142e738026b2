package web

import (
	"context"
	"edusync/internal/core"
	"edusync/pkg"
	"edusync/src/llm/study"
	"edusync/src/logger"
	"edusync/src/model"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/components/tool"
)

//go:embed templates/index.html
var templateFS embed.FS

// ErrEmptyTopic is returned for a blank or whitespace-only topic
var ErrEmptyTopic = errors.New("topic cannot be empty")

const (
	infoMessage    = "Enter a topic and click 'Run Study Session' to begin."
	warningMessage = "Please enter a valid topic before running the session."
	maxBodyBytes   = 64 << 10
	shutdownGrace  = 5 * time.Second
)

// Models listed in the form. The selection is informational only.
var Models = []string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant"}

// SessionRunner runs one study session
type SessionRunner interface {
	Run(ctx context.Context, topic string) (*pkg.Result, error)
}

// CheckpointLoader reads the latest checkpoint of a thread
type CheckpointLoader interface {
	Load(ctx context.Context, threadID string) (*core.Checkpoint, error)
}

// Server serves the study form and a small JSON API
type Server struct {
	config      model.ServerConfig
	runner      SessionRunner
	checkpoints CheckpointLoader
	modelName   string
	page        *template.Template
	tools       map[string]tool.InvokableTool
	toolNames   []string
	healthCheck func(ctx context.Context) error
}

// Option configures optional server features
type Option func(*Server)

// WithTools serves tools under /api/tools
func WithTools(tools ...tool.InvokableTool) Option {
	return func(s *Server) {
		for _, t := range tools {
			info, err := t.Info(context.Background())
			if err != nil {
				logger.Warn().Err(err).Msg("skipping tool without info")
				continue
			}
			if _, ok := s.tools[info.Name]; !ok {
				s.toolNames = append(s.toolNames, info.Name)
			}
			s.tools[info.Name] = t
		}
	}
}

// WithHealthCheck makes /healthz report check failures as 503
func WithHealthCheck(check func(ctx context.Context) error) Option {
	return func(s *Server) {
		s.healthCheck = check
	}
}

type pageData struct {
	Models    []string
	Selected  string
	Topic     string
	Info      string
	Warning   string
	Error     string
	Result    *pkg.Result
	QuizItems []pkg.QuizItem
	Raw       string
}

type sessionRequest struct {
	Topic string `json:"topic"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type toolDescription struct {
	Name string `json:"name"`
	Desc string `json:"desc"`
}

type toolResponse struct {
	Tool   string `json:"tool"`
	Result string `json:"result"`
}

// NewServer creates the server. checkpoints may be nil.
func NewServer(config model.ServerConfig, runner SessionRunner, checkpoints CheckpointLoader, modelName string, opts ...Option) (*Server, error) {
	page, err := template.New("index.html").
		Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
		ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}
	s := &Server{
		config:      config,
		runner:      runner,
		checkpoints: checkpoints,
		modelName:   modelName,
		page:        page,
		tools:       make(map[string]tool.InvokableTool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /run", s.handleRun)
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/checkpoints/{thread}", s.handleCheckpoint)
	mux.HandleFunc("GET /api/tools", s.handleListTools)
	mux.HandleFunc("POST /api/tools/{name}", s.handleInvokeTool)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// ListenAndServe blocks until ctx is done or the listener fails
func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", s.config.Addr).Msg("study form listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		logger.Info().Msg("shutting down study form")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) newPage() pageData {
	selected := Models[0]
	for _, m := range Models {
		if m == s.modelName {
			selected = m
		}
	}
	return pageData{Models: Models, Selected: selected}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := s.newPage()
	data.Info = infoMessage
	s.render(w, http.StatusOK, data)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	data := s.newPage()
	data.Topic = r.PostFormValue("topic")
	topic := strings.TrimSpace(data.Topic)
	if topic == "" {
		data.Warning = warningMessage
		s.render(w, http.StatusOK, data)
		return
	}

	result, err := s.runner.Run(r.Context(), topic)
	if err != nil {
		logger.Error().Err(err).Str("topic", topic).Msg("form session failed")
		data.Error = fmt.Sprintf("An error occurred: %v", err)
		s.render(w, http.StatusOK, data)
		return
	}

	raw, err := sonic.ConfigDefault.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Warn().Err(err).Msg("could not encode raw result")
	}
	data.Result = result
	data.QuizItems = study.ParseQuiz(result.Quiz)
	data.Raw = string(raw)
	s.render(w, http.StatusOK, data)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "could not read body"})
		return
	}

	var req sessionRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ErrEmptyTopic.Error()})
		return
	}

	result, err := s.runner.Run(r.Context(), topic)
	if err != nil {
		logger.Error().Err(err).Str("topic", topic).Msg("api session failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCheckpoint(w http.ResponseWriter, r *http.Request) {
	threadID := r.PathValue("thread")
	if s.checkpoints == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: core.ErrCheckpointNotFound.Error()})
		return
	}

	checkpoint, err := s.checkpoints.Load(r.Context(), threadID)
	if errors.Is(err, core.ErrCheckpointNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("thread_id", threadID).Msg("checkpoint lookup failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, checkpoint)
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	list := make([]toolDescription, 0, len(s.toolNames))
	for _, name := range s.toolNames {
		info, err := s.tools[name].Info(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
		list = append(list, toolDescription{Name: info.Name, Desc: info.Desc})
	}
	writeJSON(w, http.StatusOK, list)
}

// handleInvokeTool passes the request body to the tool as its JSON arguments
func (s *Server) handleInvokeTool(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	t, ok := s.tools[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("unknown tool %q", name)})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "could not read body"})
		return
	}

	out, err := t.InvokableRun(r.Context(), string(body))
	if err != nil {
		logger.Warn().Err(err).Str("tool", name).Msg("tool call failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, toolResponse{Tool: name, Result: out})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if s.healthCheck != nil {
		if err := s.healthCheck(r.Context()); err != nil {
			logger.Warn().Err(err).Msg("health check failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("unhealthy: " + err.Error()))
			return
		}
	}
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.page.Execute(w, data); err != nil {
		logger.Error().Err(err).Msg("error rendering page")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	payload, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, "encoding failure", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}
