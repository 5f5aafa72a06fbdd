package guidemate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Server exposes the guidance service over HTTP.
type Server struct {
	svc  *Service
	http *http.Server
}

// NewServer builds the HTTP server. With no explicit CORS origins every
// origin is allowed.
func NewServer(svc *Service, port int, corsOrigins []string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(corsOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = corsOrigins
	}
	engine.Use(cors.New(corsCfg))

	s := &Server{svc: svc}
	s.registerRoutes(engine)

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes(engine *gin.Engine) {
	api := engine.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/routes", s.handleCreateRoute)
	api.GET("/sessions/:user", s.handleGetSession)
	api.POST("/sessions/:user/location", s.handleLocationUpdate)
	api.DELETE("/sessions/:user", s.handleCancel)
}

// Handler exposes the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("server listening on %s", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Printf("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
