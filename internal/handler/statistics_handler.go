package handler

import (
	"net/http"
	"time"

	"backoffice/internal/middleware"
	"backoffice/internal/service"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
	now               func() time.Time
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService, now: time.Now}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	statsGroup := router.Group("/api/statistics")
	statsGroup.Use(auth.RequirePermission(service.PermDashboardRead))
	{
		statsGroup.GET("", h.GetStatistics)
		statsGroup.GET("/revenue", h.GetRevenueSeries)
	}
}

// dateRange reads start_date and end_date, defaulting to the current month to
// date. end_date covers the whole day.
func (h *StatisticsHandler) dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := h.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := now

	if raw := c.Query("start_date"); raw != "" {
		parsed, err := parseDate("start_date", raw)
		if err != nil {
			respondError(c, err)
			return start, end, false
		}
		start = parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := parseDate("end_date", raw)
		if err != nil {
			respondError(c, err)
			return start, end, false
		}
		end = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return start, end, true
}

// GetStatistics returns dashboard totals for a date range
// @Summary      Get dashboard statistics
// @Description  Project counts, PO value, invoiced and collected MYR, vendor cost and top clients
// @Tags         statistics
// @Security     BearerAuth
// @Produce      json
// @Param        start_date  query     string  false  "Start date (YYYY-MM-DD), default first of this month"
// @Param        end_date    query     string  false  "End date (YYYY-MM-DD), default today"
// @Success      200         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Router       /api/statistics [get]
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}

	stats, err := h.statisticsService.GetStatistics(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// GetRevenueSeries returns invoiced, collected and vendor cost per period
// @Summary      Get revenue time series
// @Tags         statistics
// @Security     BearerAuth
// @Produce      json
// @Param        group_by    query     string  false  "week, month (default), quarter or year"
// @Param        start_date  query     string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "End date (YYYY-MM-DD)"
// @Success      200         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Router       /api/statistics/revenue [get]
func (h *StatisticsHandler) GetRevenueSeries(c *gin.Context) {
	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}

	points, err := h.statisticsService.GetRevenueSeries(c.Request.Context(), c.DefaultQuery("group_by", "month"), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, points))
}
