package middleware

import (
	"blogging/internal/core"
	"blogging/internal/telemetry"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Cors struct {
	trace *telemetry.Trace
}

func NewCors(trace *telemetry.Trace) *Cors {
	return &Cors{trace: trace}
}

// CorsHandler 允許任意來源，並讓瀏覽器可讀取 x-token
func (m *Cors) CorsHandler() gin.HandlerFunc {
	cfg := cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Content-Encoding", core.HeaderToken},
		ExposeHeaders:   []string{core.HeaderToken, "X-App-Version"},
	}
	corsHandler := cors.New(cfg)

	type corsMeta struct {
		AllowMethods  []string `trace:"http.cors.allow_methods"`
		AllowHeaders  []string `trace:"http.cors.allow_headers"`
		ExposeHeaders []string `trace:"http.cors.expose_headers"`
		Preflight     bool     `trace:"http.cors.preflight"`
	}

	return func(c *gin.Context) {
		if isInfraPath(c.Request.URL.Path) {
			corsHandler(c)
			return
		}

		_, span, end := m.trace.WithSpan(m.trace.GetTraceContext(c), string(core.SpanCorsMiddleware))
		m.trace.ApplyTraceAttributes(span, corsMeta{
			AllowMethods:  cfg.AllowMethods,
			AllowHeaders:  cfg.AllowHeaders,
			ExposeHeaders: cfg.ExposeHeaders,
			Preflight:     c.Request.Method == http.MethodOptions,
		})
		end(nil)

		corsHandler(c)
	}
}
