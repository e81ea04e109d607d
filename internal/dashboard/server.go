// Package dashboard serves a small JSON API over the stored records, plus
// live quotes for context on a ticker.
package dashboard

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/piquette/finance-go/quote"

	"insiderwire/internal/cache"
	"insiderwire/internal/storage"
)

// Server is the dashboard HTTP server.
type Server struct {
	store  *storage.Store
	quotes *cache.QuoteCache
}

// New builds a dashboard server over the store.
func New(store *storage.Store) *Server {
	return &Server{
		store:  store,
		quotes: cache.NewQuoteCache(5 * time.Minute),
	}
}

// Router assembles the gin routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/stats", s.handleStats)
	api.GET("/trades/recent", s.handleRecentTrades)
	api.GET("/activity/:ticker", s.handleTickerActivity)
	api.GET("/quote/:ticker", s.handleQuote)

	return r
}

// Run serves the dashboard on addr until the listener fails.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.store.Summary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleRecentTrades(c *gin.Context) {
	trades, err := s.store.RecentInsiderTrades(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trades": trades, "count": len(trades)})
}

func (s *Server) handleTickerActivity(c *gin.Context) {
	ticker := strings.ToUpper(c.Param("ticker"))

	trades, err := s.store.TickerActivity(ticker, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticker": ticker, "trades": trades, "count": len(trades)})
}

func (s *Server) handleQuote(c *gin.Context) {
	ticker := c.Param("ticker")

	if cached, ok := s.quotes.Get(ticker); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	q, err := quote.Get(ticker)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if q == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no quote for " + ticker})
		return
	}

	result := cache.Quote{
		Ticker:        ticker,
		Name:          q.ShortName,
		Price:         q.RegularMarketPrice,
		ChangePercent: q.RegularMarketChangePercent,
		MarketState:   string(q.MarketState),
	}
	s.quotes.Set(result)
	c.JSON(http.StatusOK, result)
}
