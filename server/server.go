package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/taskhive/taskhive-server/auth"
	"github.com/taskhive/taskhive-server/internal/config"
	"github.com/taskhive/taskhive-server/tasks"
	"github.com/taskhive/taskhive-server/token"
	"github.com/taskhive/taskhive-server/users"
)

type Server struct {
	env    string // Environment (e.g., "DEV", "production")
	mux    *http.ServeMux
	routes []string
	config config.Config
	auth   *auth.Service
	users  users.UserRepo
	tasks  tasks.TaskRepo
}

func New(cfg config.Config, userRepo users.UserRepo, taskRepo tasks.TaskRepo) (*Server, error) {
	// A missing signing secret is a startup fault, not a per-request error.
	tokenManager, err := token.New(cfg.GetJWTSecret(), cfg.GetTokenExpiry())
	if err != nil {
		return nil, fmt.Errorf("[server.New] token manager: %w", err)
	}

	authService, err := auth.New(auth.Repos{Users: userRepo}, tokenManager, cfg.GetBcryptCost())
	if err != nil {
		return nil, fmt.Errorf("[server.New] auth service: %w", err)
	}

	s := &Server{
		mux:    http.NewServeMux(),
		config: cfg,
		auth:   authService,
		users:  userRepo,
		tasks:  taskRepo,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Debug().Str("method", parts[0]).Str("path", parts[1]).Msg("route")
		} else {
			log.Debug().Str("path", parts[0]).Msg("route")
		}
	}
}
