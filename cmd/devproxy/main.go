// devproxy is the development reverse proxy that fronts the Smart WMS
// backend. It forwards /api/* to the configured backend so browser clients
// and the gateway can keep issuing relative paths, and applies CORS for local
// frontend dev servers. Production deployments use a real reverse proxy with
// the same /api/* contract.
package main

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/jinacker/smart-wms-gateway/internal/config"
	"github.com/jinacker/smart-wms-gateway/internal/sysutil"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()
	sysutil.SetLogLevel(cfg.LogLevel)
	log.Logger = sysutil.NewLogger(cfg.LogPretty)

	backend, err := url.Parse(cfg.ProxyBackend)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.ProxyBackend).Msg("invalid proxy backend")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
		corsCfg.AllowCredentials = true
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders,
			"Authorization", "X-CSRF-Token", "X-Request-ID", "Idempotency-Key")
		r.Use(cors.New(corsCfg))
	}

	proxy := httputil.NewSingleHostReverseProxy(backend)
	proxy.ErrorHandler = func(w http.ResponseWriter, req *http.Request, err error) {
		log.Error().Err(err).Str("path", req.URL.Path).Msg("backend unreachable")
		w.WriteHeader(http.StatusBadGateway)
	}

	r.Any("/api/*path", func(c *gin.Context) {
		proxy.ServeHTTP(c.Writer, c.Request)
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	log.Info().
		Str("addr", cfg.ProxyAddr).
		Str("backend", backend.String()).
		Msg("dev proxy listening")
	if err := r.Run(cfg.ProxyAddr); err != nil {
		log.Fatal().Err(err).Msg("proxy stopped")
	}
}
