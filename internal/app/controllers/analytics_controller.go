package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/akshat/campushub/internal/app/models/dto"
	"github.com/akshat/campushub/internal/app/services"
	"github.com/akshat/campushub/internal/middleware"
)

// AnalyticsController serves aggregate statistics
type AnalyticsController struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analyticsService *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

// limitParam reads an optional positive limit query parameter.
func limitParam(ctx *gin.Context, fallback int) int {
	raw := ctx.Query("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}

// GetOverview retrieves system-wide totals
// @Summary Analytics overview
// @Description Retrieves total events, students, registrations and the overall attendance rate
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.AnalyticsOverview} "Overview retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /analytics/overview [get]
func (c *AnalyticsController) GetOverview(ctx *gin.Context) {
	overview, err := c.analyticsService.GetOverview(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(overview))
}

// GetTopActiveStudents retrieves the students with the most registrations
// @Summary Top active students
// @Description Ranks students by registrations and attendance rate
// @Tags analytics
// @Produce json
// @Param limit query int false "Maximum rows" default(10)
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentActivity} "Students retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /analytics/top-active-students [get]
func (c *AnalyticsController) GetTopActiveStudents(ctx *gin.Context) {
	activities, err := c.analyticsService.GetTopActiveStudents(ctx, limitParam(ctx, 10))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(activities))
}

// GetEventPopularity retrieves the most popular events
// @Summary Event popularity
// @Description Ranks events by registrations and attendance
// @Tags analytics
// @Produce json
// @Param limit query int false "Maximum rows" default(10)
// @Success 200 {object} dto.APIResponse{data=[]dto.EventPopularity} "Events retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /analytics/event-popularity [get]
func (c *AnalyticsController) GetEventPopularity(ctx *gin.Context) {
	popularity, err := c.analyticsService.GetEventPopularity(ctx, limitParam(ctx, 10))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(popularity))
}

// GetEventTypeAnalysis retrieves title-based event classification
// @Summary Event type analysis
// @Description Classifies event titles into categories with counts and percentages
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.EventTypeCount} "Analysis retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /analytics/event-type-analysis [get]
func (c *AnalyticsController) GetEventTypeAnalysis(ctx *gin.Context) {
	analysis, err := c.analyticsService.GetEventTypeAnalysis(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(analysis))
}

// GetEventStats retrieves detailed statistics for one event
// @Summary Event statistics
// @Description Retrieves registration, attendance and check-in statistics for an event
// @Tags analytics
// @Produce json
// @Param eventId path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventStats} "Statistics retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /analytics/event-stats/{eventId} [get]
func (c *AnalyticsController) GetEventStats(ctx *gin.Context) {
	eventID, err := strconv.ParseInt(ctx.Param("eventId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid event ID")))
		return
	}

	stats, err := c.analyticsService.GetEventStats(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}
