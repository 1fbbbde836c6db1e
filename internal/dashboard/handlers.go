package dashboard

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/journal"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/model"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/predictor"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/signal"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/subscriber"
)

type tickerStatus struct {
	model.TickerInfo
	Trained bool `json:"trained"`
	HasLog  bool `json:"has_log"`
}

func (s *Server) listTickers(c *gin.Context) {
	out := make([]tickerStatus, 0, len(s.cfg.Tickers))
	for _, info := range s.cfg.Tickers {
		_, err := predictor.LoadMetadata(s.cfg.Paths.ModelsDir, info.Symbol)
		out = append(out, tickerStatus{
			TickerInfo: info,
			Trained:    err == nil,
			HasLog:     s.journal.HasLog(info.Symbol),
		})
	}
	c.JSON(http.StatusOK, gin.H{"tickers": out})
}

func (s *Server) getModel(c *gin.Context) {
	info, ok := s.resolveSymbol(c)
	if !ok {
		return
	}
	meta, err := predictor.LoadMetadata(s.cfg.Paths.ModelsDir, info.Symbol)
	if errors.Is(err, predictor.ErrNotTrained) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no trained model for %s", info.Symbol)})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meta)
}

func (s *Server) listPredictions(c *gin.Context) {
	info, ok := s.resolveSymbol(c)
	if !ok {
		return
	}
	recs, err := s.journal.Read(info.Symbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		if len(recs) > limit {
			recs = recs[len(recs)-limit:]
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"ticker":  info.Symbol,
		"count":   len(recs),
		"records": recs,
	})
}

func (s *Server) latestPrediction(c *gin.Context) {
	info, ok := s.resolveSymbol(c)
	if !ok {
		return
	}
	rec, err := s.journal.Latest(info.Symbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no predictions for %s yet", info.Symbol)})
		return
	}

	sig := signal.Classify(rec.PriceChangePct, rec.RSI)
	c.JSON(http.StatusOK, gin.H{
		"record":         rec,
		"signal":         sig,
		"interpretation": signal.Interpret(rec, nil),
	})
}

func (s *Server) predictionStats(c *gin.Context) {
	info, ok := s.resolveSymbol(c)
	if !ok {
		return
	}
	recs, err := s.journal.Read(info.Symbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, journal.Statistics(recs))
}

func (s *Server) exportPredictions(c *gin.Context) {
	info, ok := s.resolveSymbol(c)
	if !ok {
		return
	}
	recs, err := s.journal.Read(info.Symbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_predictions.csv", info.Symbol))
	c.Status(http.StatusOK)
	if err := journal.WriteCSV(c.Writer, recs); err != nil {
		log.Warn().Err(err).Str("symbol", info.Symbol).Msg("csv export aborted mid-stream")
	}
}

type overviewEntry struct {
	model.TickerInfo
	Record *model.PredictionRecord `json:"record,omitempty"`
	Signal model.Signal            `json:"signal,omitempty"`
}

func (s *Server) overview(c *gin.Context) {
	entries := make([]overviewEntry, 0, len(s.cfg.Tickers))
	for _, info := range s.cfg.Tickers {
		entry := overviewEntry{TickerInfo: info}
		rec, err := s.journal.Latest(info.Symbol)
		if err == nil && rec != nil {
			entry.Record = rec
			entry.Signal = signal.Classify(rec.PriceChangePct, rec.RSI)
		}
		entries = append(entries, entry)
	}
	c.JSON(http.StatusOK, gin.H{
		"generated_at": time.Now().Format(model.TimeLayout),
		"tickers":      entries,
	})
}

func (s *Server) setSubscriptions(c *gin.Context) {
	var req struct {
		Email   string   `json:"email" binding:"required"`
		Symbols []string `json:"symbols"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.store.SetSubscriptions(req.Email, req.Symbols); err != nil {
		if errors.Is(err, subscriber.ErrInvalidEmail) || errors.Is(err, subscriber.ErrUnknownSymbol) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": req.Email, "symbols": req.Symbols})
}

func (s *Server) deleteSubscriptions(c *gin.Context) {
	email := c.Param("email")
	if !strings.Contains(email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": subscriber.ErrInvalidEmail.Error()})
		return
	}
	removed, err := s.store.UnsubscribeAll(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": email, "removed": removed})
}

func (s *Server) subscriptionStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Stats())
}

func (s *Server) resolveSymbol(c *gin.Context) (model.TickerInfo, bool) {
	symbol := strings.ToUpper(c.Param("symbol"))
	info, ok := s.cfg.Lookup(symbol)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown ticker %q", symbol)})
		return model.TickerInfo{}, false
	}
	return info, true
}
