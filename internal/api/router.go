package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/hausbuch/backend/internal/model"
	"github.com/hausbuch/backend/internal/service"
)

// NewRouter wires the REST surface over the recurring and forecast services.
func NewRouter(recurring *service.RecurringService, forecast *service.ForecastService, log *logrus.Logger, allowedOrigins []string) *gin.Engine {
	registerValidations()

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := &handlers{recurring: recurring, forecast: forecast, log: log}

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := router.Group("/v1")
	{
		account := v1.Group("/accounts/:accountId")
		account.POST("/recurring-transactions/detect", h.detectRecurring)
		account.GET("/recurring-transactions", h.listRecurring)
		account.GET("/recurring-transactions/summary", h.recurringSummary)
		account.GET("/recurring-transactions/upcoming", h.upcomingRecurring)
		account.PATCH("/recurring-transactions/:id", h.updateRecurring)
		account.GET("/forecast", h.monthlyForecast)

		v1.POST("/jobs/detect-recurring", h.detectAllAccounts)
	}

	return router
}

// registerValidations adds the "frequency" rule to gin's validator engine so
// request bindings can constrain frequency filters to known values.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("frequency", func(fl validator.FieldLevel) bool {
		_, err := model.ParseFrequency(fl.Field().String())
		return err == nil
	})
}

// requestLogger emits one structured line per request.
func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("request handled")
	}
}
