package api

import (
	"bytes"
	"context"
	"fmt"
	"riskmodel/internal/logger"
	"riskmodel/internal/service"
	"riskmodel/internal/util"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type ApiHandler struct {
	Config            util.Config
	Logger            *zap.SugaredLogger
	ScoringService    service.ScoringService
	SimulationService service.SimulationService
	ReportService     service.ReportService
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to riskmodel"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/score", m.score)
	router.POST("/simulate", m.simulate)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

func (m ApiHandler) logger() *zap.SugaredLogger {
	if m.Logger != nil {
		return m.Logger
	}
	return zap.S()
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c).Warnw("request failed", "status", code, "error", err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// logRequestMiddleware puts a request scoped logger on the gin context and
// logs every request once it completes
func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	lg := m.logger().With(
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
		"ip", ctx.ClientIP(),
	)
	ctx.Set(logger.ContextKey, lg)

	w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: ctx.Writer}
	ctx.Writer = w

	start := time.Now().UTC()
	ctx.Next()

	status := ctx.Writer.Status()
	fields := []interface{}{
		"status", status,
		"durationMs", time.Since(start).Milliseconds(),
		"responseBytes", w.body.Len(),
	}
	if status >= 400 {
		fields = append(fields, "responseBody", w.body.String())
	}
	lg.Infow("request complete", fields...)
}

// requestContext carries the request logger into the services
func requestContext(c *gin.Context) context.Context {
	return logger.WithLogger(c.Request.Context(), logger.FromContext(c))
}
