package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"DayTradeDesk/internal/model"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Analyzer runs one dashboard analysis for a raw ticker input.
type Analyzer interface {
	Analyze(ctx context.Context, ticker string) (*model.Analysis, error)
}

// Params configures the HTTP shell.
type Params struct {
	Port           int
	AllowedOrigins []string
	// ExampleTickers are listed in the sidebar.
	ExampleTickers []string
	// RequestTimeout bounds a single analysis. Zero means no limit.
	RequestTimeout time.Duration
}

// Server serves the dashboard page and its JSON API.
type Server struct {
	p        Params
	analyzer Analyzer
	page     *template.Template
	router   *gin.Engine
}

// NewServer parses the page template and builds the router.
func NewServer(p Params, a Analyzer) *Server {
	s := &Server{
		p:        p,
		analyzer: a,
		page:     template.Must(template.ParseFS(templateFS, "templates/index.html")),
	}
	s.router = s.setupRouter()
	return s
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	if len(s.p.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  s.p.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}

	r.GET("/", s.indexPage)
	r.POST("/analyze", s.analyzePage)

	api := r.Group("/api")
	{
		api.GET("/health", s.healthCheck)
		api.HEAD("/health", s.healthCheck)
		api.GET("/analyze", s.analyzeJSON)
	}
	return r
}

// Run starts the HTTP server and blocks until it fails or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.p.Port),
		Handler: s.router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()
	log.Info().Int("port", s.p.Port).Msg("dashboard listening")

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shCtx); err != nil {
			log.Warn().Err(err).Msg("graceful shutdown failed")
		}
		<-errCh
		return nil

	case err := <-errCh:
		return err
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
