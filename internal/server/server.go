package server

import (
	"sync"

	"github.com/gin-gonic/gin"

	"embedpipe/internal/embedding"
	"embedpipe/internal/engine"
	"embedpipe/internal/store"
)

type Server struct {
	router   *gin.Engine
	store    *store.Store
	registry *embedding.Registry
	opts     engine.Options

	mu       sync.Mutex
	handlers map[string]*engine.Handler
}

// New creates a new server instance
func New(st *store.Store, registry *embedding.Registry, opts engine.Options) *Server {
	s := &Server{
		router:   gin.Default(),
		store:    st,
		registry: registry,
		opts:     opts,
		handlers: make(map[string]*engine.Handler),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleHealthCheck())
	s.router.POST("/v1/models", s.handleCreateModel())
	s.router.POST("/v1/models/:name/predict", s.handlePredict())
	s.router.GET("/v1/models/:name/describe", s.handleDescribe())
	s.router.POST("/v1/models/:name/finetune", s.handleFinetune())
}

// Run starts the HTTP server on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// handlerFor returns the engine handler bound to one model's storage
// namespace, keeping instances (and their caches) alive across calls.
func (s *Server) handlerFor(name string) (*engine.Handler, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h, ok := s.handlers[name]; ok {
		return h, nil
	}
	h, err := engine.New(s.store.Scoped(name), s.registry, s.opts)
	if err != nil {
		return nil, err
	}
	s.handlers[name] = h
	return h, nil
}
