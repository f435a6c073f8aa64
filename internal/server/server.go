// Package server exposes the quote engine over HTTP.
package server

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/irvrobbi/promusic/internal/config"
	"github.com/irvrobbi/promusic/internal/metrics"
	"github.com/irvrobbi/promusic/internal/observability"
	obslogger "github.com/irvrobbi/promusic/internal/observability/logger"
	obstracing "github.com/irvrobbi/promusic/internal/observability/tracing"
	"github.com/irvrobbi/promusic/internal/providers/pdf"
	quotedomain "github.com/irvrobbi/promusic/internal/quote/domain"
	ratecarddomain "github.com/irvrobbi/promusic/internal/ratecard/domain"
	"github.com/irvrobbi/promusic/internal/ratelimit"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, appMetrics *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(appMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(appMetrics.Registry(), promhttp.HandlerOpts{})))

	return r
}

func registerGin(obsCfg observability.Config, appMetrics *metrics.Metrics) *gin.Engine {
	return NewEngine(obsCfg, appMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	quoteSvc     quotedomain.Service
	rates        ratecarddomain.Repository
	pdfProvider  pdf.Provider
	quoteLimiter *ratelimit.QuoteLimiter
	appMetrics   *metrics.Metrics
	log          *zap.Logger

	quoteSeq atomic.Int64
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	QuoteSvc     quotedomain.Service
	Rates        ratecarddomain.Repository
	PDFProvider  pdf.Provider
	QuoteLimiter *ratelimit.QuoteLimiter `optional:"true"`
	AppMetrics   *metrics.Metrics
	Log          *zap.Logger
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		quoteSvc:     p.QuoteSvc,
		rates:        p.Rates,
		pdfProvider:  p.PDFProvider,
		quoteLimiter: p.QuoteLimiter,
		appMetrics:   p.AppMetrics,
		log:          p.Log.Named("server"),
	}

	s.registerAPIRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1")

	v1.GET("/ratecard", s.GetRateCard)

	v1.POST("/quotes", s.QuoteRateLimit(), s.CreateQuote)
	v1.POST("/quotes/receipt", s.QuoteRateLimit(), s.CreateQuoteReceipt)
	v1.POST("/quotes/pdf", s.QuoteRateLimit(), s.CreateQuotePDF)
}

// nextQuoteSeq is a per-process sequence; estimates are not persisted so a
// monotonic counter is enough to keep numbers unique within a run.
func (s *Server) nextQuoteSeq() int64 {
	return s.quoteSeq.Add(1)
}
