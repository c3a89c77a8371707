package api

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"portfolioservice/internal/db/models/postgres/public/model"
	"portfolioservice/internal/domain"
	"portfolioservice/internal/logger"
	"portfolioservice/internal/repository"
	"portfolioservice/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type ApiHandler struct {
	Db                   *sql.DB
	PortfolioService     service.PortfolioService
	RebalanceService     service.RebalanceService
	DriftService         service.DriftService
	ApiRequestRepository repository.ApiRequestRepository
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.attachLoggerMiddleware)
	router.Use(m.logRequestMiddlware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to portfolio-service"})
	})

	v1 := router.Group("/api/v1")
	v1.POST("/portfolio", m.createOrUpdatePortfolio)
	v1.GET("/portfolio/:id", m.getPortfolioByID)
	v1.GET("/portfolio/:id/drift", m.getPortfolioDrift)
	v1.POST("/portfolio/apply", m.applyRebalance)
	v1.GET("/user/:userId/portfolio", m.getPortfolioByUserID)
	v1.GET("/rm/:rmId/portfolios", m.getPortfoliosByRmID)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, statusForError(err))
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c).Warnw("request failed", "status", code, "error", err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

// statusForError maps the domain taxonomy onto HTTP codes. Batch-fatal trade
// errors are the caller's inputs being wrong, so they read as 400s; lock
// timeouts are retryable and read as 409.
func statusForError(err error) int {
	var (
		validation      domain.ValidationError
		invalidCategory domain.InvalidCategoryError
		missingPrice    domain.MissingPriceError
		insufficient    domain.InsufficientHoldingsError
		notFound        domain.NotFoundError
		lockTimeout     domain.LockTimeoutError
	)
	switch {
	case errors.As(err, &validation),
		errors.As(err, &invalidCategory),
		errors.As(err, &missingPrice),
		errors.As(err, &insufficient):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &lockTimeout):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (m ApiHandler) attachLoggerMiddleware(ctx *gin.Context) {
	ctx.Set(logger.ContextKey, logger.New())
	ctx.Next()
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (m ApiHandler) logRequestMiddlware(ctx *gin.Context) {
	w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: ctx.Writer}
	ctx.Writer = w

	body, err := ctx.GetRawData()
	if err != nil {
		log.Println(fmt.Errorf("failed to get raw data: %w", err))
	}
	ctx.Request.Body = io.NopCloser(bytes.NewReader(body))

	start := time.Now().UTC()
	req, err := m.ApiRequestRepository.Add(m.Db, model.APIRequest{
		IPAddress:   strPtr(ctx.ClientIP()),
		Method:      ctx.Request.Method,
		Route:       ctx.Request.URL.Path,
		RequestBody: strPtr(string(body)),
		StartTs:     start,
	})
	if err != nil {
		log.Println(err)
	}

	ctx.Next()

	if req != nil {
		req.DurationMs = int64Ptr(time.Since(start).Milliseconds())
		req.StatusCode = int32Ptr(int32(ctx.Writer.Status()))
		req.ResponseBody = strPtr(w.body.String())

		err = m.ApiRequestRepository.Update(m.Db, *req)
		if err != nil {
			log.Println(err)
		}
	}
}

func int64Ptr(i int64) *int64 {
	return &i
}
func int32Ptr(i int32) *int32 {
	return &i
}
func strPtr(s string) *string {
	return &s
}
