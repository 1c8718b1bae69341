package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hausbuch/backend/internal/model"
	"github.com/hausbuch/backend/internal/service"
)

type handlers struct {
	recurring *service.RecurringService
	forecast  *service.ForecastService
	log       *logrus.Logger
}

// detectRecurring triggers a detection run for one account. With ?force=true
// all existing patterns are wiped and re-detected, discarding user overrides;
// clients surface a confirmation step before calling it that way.
func (h *handlers) detectRecurring(c *gin.Context) {
	accountID := c.Param("accountId")
	force, _ := strconv.ParseBool(c.DefaultQuery("force", "false"))

	detected, err := h.recurring.DetectForAccount(c.Request.Context(), accountID, force)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":                 len(detected),
		"recurringTransactions": emptyIfNil(detected),
	})
}

type listRecurringQuery struct {
	Frequency  string `form:"frequency" binding:"omitempty,frequency"`
	ActiveOnly bool   `form:"activeOnly"`
}

func (h *handlers) listRecurring(c *gin.Context) {
	var query listRecurringQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var freq *model.Frequency
	if query.Frequency != "" {
		f, _ := model.ParseFrequency(query.Frequency)
		freq = &f
	}

	records, err := h.recurring.ListForAccount(c.Request.Context(), c.Param("accountId"), freq, query.ActiveOnly)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recurringTransactions": emptyIfNil(records)})
}

func (h *handlers) recurringSummary(c *gin.Context) {
	summary, err := h.recurring.Summary(c.Request.Context(), c.Param("accountId"))
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type upcomingQuery struct {
	Days int `form:"days,default=30" binding:"min=1,max=365"`
}

func (h *handlers) upcomingRecurring(c *gin.Context) {
	var query upcomingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	occurrences, err := h.recurring.Upcoming(c.Request.Context(), c.Param("accountId"), query.Days)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upcoming": emptyIfNil(occurrences)})
}

type updateRecurringRequest struct {
	DisplayName *string `json:"displayName" binding:"omitempty,max=120"`
	CategoryID  *string `json:"categoryId" binding:"omitempty,max=64"`
	IsActive    *bool   `json:"isActive"`
}

func (h *handlers) updateRecurring(c *gin.Context) {
	var req updateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rt, err := h.recurring.UpdateOverrides(c.Request.Context(), c.Param("accountId"), c.Param("id"), service.PatternOverrides{
		DisplayName: req.DisplayName,
		CategoryID:  req.CategoryID,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.serverError(c, err)
		return
	}
	if rt == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recurring transaction not found"})
		return
	}
	c.JSON(http.StatusOK, rt)
}

type forecastQuery struct {
	Months              int   `form:"months,default=6" binding:"min=1,max=24"`
	OpeningBalanceCents int64 `form:"openingBalanceCents"`
}

func (h *handlers) monthlyForecast(c *gin.Context) {
	var query forecastQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	forecast, err := h.forecast.MonthlyForecast(c.Request.Context(), c.Param("accountId"), query.Months, query.OpeningBalanceCents)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"forecast": forecast})
}

// detectAllAccounts is the scheduler entry point: one sweep over every
// account with transactions.
func (h *handlers) detectAllAccounts(c *gin.Context) {
	force, _ := strconv.ParseBool(c.DefaultQuery("force", "false"))

	summary, err := h.recurring.DetectAllAccounts(c.Request.Context(), force)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *handlers) serverError(c *gin.Context, err error) {
	h.log.WithError(err).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// emptyIfNil keeps JSON list fields as [] instead of null.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
