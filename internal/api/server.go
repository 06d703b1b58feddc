// Package api exposes the scoring engine over HTTP.
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dotcommander/codecred/internal/metrics"
)

// Server wraps the scoring engine in a gin router.
type Server struct {
	router       *gin.Engine
	engine       *metrics.Engine
	maxInputSize int64
}

// NewServer creates a server around the given engine. Request bodies larger
// than maxInputSize are rejected.
func NewServer(engine *metrics.Engine, maxInputSize int64) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router:       router,
		engine:       engine,
		maxInputSize: maxInputSize,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/v1/metrics", s.handleMetrics)
	s.router.POST("/v1/evaluate", s.handleEvaluate)
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP on the given address until the listener fails.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type metricInfo struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

func (s *Server) handleMetrics(c *gin.Context) {
	evaluators := metrics.AllEvaluators()
	infos := make([]metricInfo, len(evaluators))
	for i, ev := range evaluators {
		infos[i] = metricInfo{
			Kind:        ev.Kind().String(),
			Description: ev.Describe(),
		}
	}
	c.JSON(http.StatusOK, gin.H{"metrics": infos})
}

type evaluateRequest struct {
	Code string `json:"code"`
}

type evaluateResponse struct {
	Evaluations metrics.Set `json:"evaluations"`
	Composite   float64     `json:"composite"`
	Label       string      `json:"label"`
}

func (s *Server) handleEvaluate(c *gin.Context) {
	if s.maxInputSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxInputSize)
	}

	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}

	if s.maxInputSize > 0 && int64(len(req.Code)) > s.maxInputSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("code exceeds maximum input size of %d bytes", s.maxInputSize),
		})
		return
	}

	evaluations := s.engine.EvaluateAll(req.Code)
	composite := evaluations.Composite()

	c.JSON(http.StatusOK, evaluateResponse{
		Evaluations: evaluations,
		Composite:   composite,
		Label:       metrics.LabelFromScore(composite),
	})
}
