// Package dashboard serves the prediction logs, model metadata and
// subscription management over HTTP.
package dashboard

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/config"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/journal"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/metrics"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/subscriber"
)

// Server bundles the read side of the monitor: journal, model artifacts
// and the subscriber store.
type Server struct {
	cfg     *config.Config
	journal *journal.Journal
	store   *subscriber.Store
}

// NewServer creates a dashboard server over the given collaborators.
func NewServer(cfg *config.Config, jnl *journal.Journal, store *subscriber.Store) *Server {
	return &Server{cfg: cfg, journal: jnl, store: store}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/tickers", s.listTickers)
		v1.GET("/models/:symbol", s.getModel)
		v1.GET("/predictions/:symbol", s.listPredictions)
		v1.GET("/predictions/:symbol/latest", s.latestPrediction)
		v1.GET("/predictions/:symbol/stats", s.predictionStats)
		v1.GET("/predictions/:symbol/export", s.exportPredictions)
		v1.GET("/overview", s.overview)
		v1.POST("/subscriptions", s.setSubscriptions)
		v1.DELETE("/subscriptions/:email", s.deleteSubscriptions)
		v1.GET("/subscriptions/stats", s.subscriptionStats)
	}
	return r
}

// Run serves the dashboard until the listener fails.
func (s *Server) Run(addr string) error {
	log.Info().Str("addr", addr).Msg("dashboard listening")
	return s.Router().Run(addr)
}

// requestLogger emits one structured log line per request and feeds the
// request counter. The route template keeps label cardinality bounded.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		code := c.Writer.Status()
		metrics.DashboardRequests.WithLabelValues(path, strconv.Itoa(code)).Inc()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", code).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
