package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edgefn/translation-gateway/internal/auth"
	"github.com/edgefn/translation-gateway/internal/version"
)

func NewRouter(st *State, accessLogger *log.Logger, accessColor bool) *gin.Engine {
	cfg, _ := st.Snapshot()

	r := gin.New()
	r.Use(requestIDMiddleware())
	if cfg.AccessLogEnabled() {
		r.Use(requestLogger(accessLogger, accessColor))
	}
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, version.Get())
	})
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
	})

	v1 := r.Group("/v1")
	if cfg.Auth.APIKey != "" {
		v1.Use(auth.Middleware(cfg.Auth.APIKey))
	}
	v1.POST("/translate", makeTranslateHandler(st))

	return r
}
