package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"internhub-api/internal/api/middleware"
	"internhub-api/internal/api/routes"
	"internhub-api/internal/app"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	router *gin.Engine
	app    *app.Application // Store the application container
	http   *http.Server
}

func NewServer(app *app.Application) *Server {
	if app.Config.Server.Mode != "" {
		gin.SetMode(app.Config.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger(app.Log))

	// --- Configure and Apply CORS Middleware ---
	app.Log.Info("Configuring CORS", map[string]interface{}{"origins": app.Config.CORS.AllowedOrigins})
	corsConfig := cors.Config{
		AllowOriginFunc: func(origin string) bool {
			for _, allowed := range app.Config.CORS.AllowedOrigins {
				if allowed == "*" || allowed == origin {
					return true
				}
			}
			return false
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour, // How long the result of a preflight request can be cached
	}
	router.Use(cors.New(corsConfig))

	_ = router.SetTrustedProxies(nil) // Remove the gin warning about untrusted proxies

	routes.RegisterRoutes(router, app)

	return &Server{
		router: router,
		app:    app,
		http: &http.Server{
			Addr:              app.Config.Server.Address(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the configured engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.app.Log.Info("Server starting", map[string]interface{}{"addr": s.http.Addr})
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
