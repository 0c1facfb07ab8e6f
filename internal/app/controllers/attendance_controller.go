package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/akshat/campushub/internal/app/models"
	"github.com/akshat/campushub/internal/app/models/dto"
	"github.com/akshat/campushub/internal/app/services"
	"github.com/akshat/campushub/internal/middleware"
)

// AttendanceController handles attendance marking, check-ins and roster
// retrieval.
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// GetEventAttendance retrieves the resolved roster for an event
// @Summary Get event attendance
// @Description Retrieves every registered student with the resolved tri-state attendance status, ordered by name
// @Tags attendance
// @Produce json
// @Param eventId path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=[]models.AttendanceRecord} "Attendance retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/event/{eventId} [get]
func (c *AttendanceController) GetEventAttendance(ctx *gin.Context) {
	eventID, err := strconv.ParseInt(ctx.Param("eventId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid event ID")))
		return
	}

	records, err := c.attendanceService.GetEventAttendance(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(records))
}

// MarkAttendance applies an admin attendance mark
// @Summary Mark attendance
// @Description Sets a student's status for an event to attended or absent and broadcasts the updated roster
// @Tags attendance
// @Accept json
// @Produce json
// @Param request body dto.MarkAttendanceRequest true "Attendance mark"
// @Success 200 {object} dto.APIResponse{data=[]models.AttendanceRecord} "Attendance marked successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or status"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/mark [post]
func (c *AttendanceController) MarkAttendance(ctx *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	records, err := c.attendanceService.MarkAttendance(ctx, req.StudentID, req.EventID,
		models.AttendanceStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(records))
}

// SelfCheckIn records a student-initiated check-in
// @Summary Student self check-in
// @Description Records a check-in for the student; a repeat check-in is a conflict
// @Tags attendance
// @Accept json
// @Produce json
// @Param request body dto.CheckInRequest true "Check-in"
// @Success 201 {object} dto.APIResponse{data=[]models.AttendanceRecord} "Checked in successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Student has already checked in"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance [post]
func (c *AttendanceController) SelfCheckIn(ctx *gin.Context) {
	var req dto.CheckInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	records, err := c.attendanceService.SelfCheckIn(ctx, req.StudentID, req.EventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(records))
}

// GetEventCheckIns retrieves the raw check-in log for an event
// @Summary Get event check-ins
// @Description Retrieves the raw check-in rows for an event, newest first
// @Tags attendance
// @Produce json
// @Param eventId path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=[]models.CheckInInfo} "Check-ins retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/event/{eventId}/check-ins [get]
func (c *AttendanceController) GetEventCheckIns(ctx *gin.Context) {
	eventID, err := strconv.ParseInt(ctx.Param("eventId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid event ID")))
		return
	}

	checkIns, err := c.attendanceService.GetEventCheckIns(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(checkIns))
}
