// Package server exposes the knowledge base over HTTP: a JSON API for
// the manifest, topics, search and reader preferences, the generated
// static site, and a websocket channel for live reload.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/socratesone/knowledge-navigator/internal/config"
	"github.com/socratesone/knowledge-navigator/internal/navigation"
	"github.com/socratesone/knowledge-navigator/internal/search"
	"github.com/socratesone/knowledge-navigator/internal/site"
	"github.com/socratesone/knowledge-navigator/internal/store"
)

// Server serves one loaded library. The library can be swapped at
// runtime when the content directory changes.
type Server struct {
	cfg   *config.Config
	store *store.Store
	hub   *Hub

	mu     sync.RWMutex
	lib    *site.Library
	tree   *navigation.Tree
	topics []search.Topic

	router     chi.Router
	httpServer *http.Server
}

// New creates a server for the given library. st may be nil; the
// preferences API then responds 503.
func New(cfg *config.Config, lib *site.Library, st *store.Store) *Server {
	s := &Server{
		cfg:   cfg,
		store: st,
		hub:   NewHub(),
	}
	s.SetLibrary(lib)
	s.router = s.buildRouter()
	return s
}

// SetLibrary swaps in a freshly loaded library and rebuilds the search
// input. Requests in flight keep reading the old one.
func (s *Server) SetLibrary(lib *site.Library) {
	topics := site.SearchTopics(lib)
	tree := navigation.NewTree(lib.Manifest)
	s.mu.Lock()
	s.lib = lib
	s.tree = tree
	s.topics = topics
	s.mu.Unlock()
}

// Tree returns the navigation tree for the served manifest.
func (s *Server) Tree() *navigation.Tree {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree
}

// Library returns the currently served library.
func (s *Server) Library() *site.Library {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lib
}

func (s *Server) searchTopics() []search.Topic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.topics
}

// Hub returns the reload hub so the watcher can broadcast.
func (s *Server) Hub() *Hub { return s.hub }

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "If-None-Match"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/manifest", s.handleManifest)
		r.Get("/topics/{slug}", s.handleTopic)
		r.Get("/search", s.handleSearch)
		r.Get("/preferences/{reader}", s.handleGetPreferences)
		r.Put("/preferences/{reader}", s.handlePutPreferences)
		r.Post("/bookmarks/{reader}/{topic}", s.handleAddBookmark)
		r.Delete("/bookmarks/{reader}/{topic}", s.handleRemoveBookmark)
	})

	r.Get("/ws", s.hub.Handle)

	// The generated static site backs everything else.
	r.Handle("/*", http.FileServer(http.Dir(s.cfg.OutputDir)))

	return r
}

// Start begins listening on the configured address.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("knav serving %s at http://%s", s.cfg.ContentDir, s.cfg.Addr())
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr(), err)
	}
	return nil
}

// Shutdown gracefully shuts down the server and closes the hub.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
