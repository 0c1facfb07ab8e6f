package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/akshat/campushub/internal/app/models"
	"github.com/akshat/campushub/internal/app/models/dto"
	"github.com/akshat/campushub/internal/app/services"
	"github.com/akshat/campushub/internal/middleware"
)

// FeedbackController handles feedback submission and deletion
type FeedbackController struct {
	feedbackService *services.FeedbackService
}

// NewFeedbackController creates a new FeedbackController
func NewFeedbackController(feedbackService *services.FeedbackService) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

// studentIDParam reads the optional student_id query parameter that
// switches student-scoped behavior on.
func studentIDParam(ctx *gin.Context) (*int64, error) {
	raw := ctx.Query("student_id")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// GetFeedback retrieves feedback
// @Summary Get feedback
// @Description Without student_id, returns every feedback row (admin view). With student_id, returns that student's feedback excluding entries they deleted
// @Tags feedback
// @Produce json
// @Param student_id query int false "Scope to one student"
// @Success 200 {object} dto.APIResponse{data=[]models.FeedbackInfo} "Feedback retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /feedback [get]
func (c *FeedbackController) GetFeedback(ctx *gin.Context) {
	studentID, err := studentIDParam(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")))
		return
	}

	feedback, err := c.feedbackService.GetFeedback(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(feedback))
}

// GetEventFeedback retrieves feedback for one event
// @Summary Get event feedback
// @Description Retrieves all feedback submitted for an event
// @Tags feedback
// @Produce json
// @Param eventId path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=[]models.FeedbackInfo} "Feedback retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /feedback/event/{eventId} [get]
func (c *FeedbackController) GetEventFeedback(ctx *gin.Context) {
	eventID, err := strconv.ParseInt(ctx.Param("eventId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid event ID")))
		return
	}

	feedback, err := c.feedbackService.GetEventFeedback(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(feedback))
}

// CreateFeedback submits new feedback
// @Summary Submit feedback
// @Description Stores a rating between 1 and 5 with an optional comment
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body dto.CreateFeedbackRequest true "Feedback"
// @Success 201 {object} dto.APIResponse{data=models.Feedback} "Feedback submitted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or rating"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /feedback [post]
func (c *FeedbackController) CreateFeedback(ctx *gin.Context) {
	var req dto.CreateFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	feedback := &models.Feedback{
		StudentID: req.StudentID,
		EventID:   req.EventID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	id, err := c.feedbackService.CreateFeedback(ctx, feedback)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	feedback.ID = id

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(feedback))
}

// DeleteFeedback removes one feedback entry
// @Summary Delete feedback
// @Description Soft deletes for the student named by student_id; hard deletes without it
// @Tags feedback
// @Produce json
// @Param id path int true "Feedback ID"
// @Param student_id query int false "Soft delete on behalf of this student"
// @Success 200 {object} dto.APIResponse "Feedback deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Feedback not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /feedback/{id} [delete]
func (c *FeedbackController) DeleteFeedback(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid feedback ID")))
		return
	}

	studentID, err := studentIDParam(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")))
		return
	}

	if err := c.feedbackService.DeleteFeedback(ctx, id, studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Feedback deleted successfully"))
}

// DeleteFeedbackBulk removes several feedback entries
// @Summary Bulk delete feedback
// @Description Deletes the listed feedback rows, soft when student_id is set in the body
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body dto.BulkDeleteFeedbackRequest true "Feedback IDs and optional student"
// @Success 200 {object} dto.APIResponse "Feedback deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /feedback [delete]
func (c *FeedbackController) DeleteFeedbackBulk(ctx *gin.Context) {
	var req dto.BulkDeleteFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	var studentID *int64
	if req.StudentID > 0 {
		studentID = &req.StudentID
	}

	count, err := c.feedbackService.DeleteFeedbackBulk(ctx, req.FeedbackIDs, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse(
		fmt.Sprintf("Deleted %d feedback items successfully", count)))
}
