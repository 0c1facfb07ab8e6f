package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/akshat/campushub/internal/app/models/dto"
	"github.com/akshat/campushub/internal/pkg/apperrors"
	"github.com/akshat/campushub/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Not-found yields
// 404, conflicts 409, validation failures 400, everything unrecognized 500.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Event not found")))
	case errors.Is(err, apperrors.ErrStudentNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found")))
	case errors.Is(err, apperrors.ErrRegistrationNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Registration not found")))
	case errors.Is(err, apperrors.ErrFeedbackNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Feedback not found")))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")))
	case errors.Is(err, apperrors.ErrStudentIDAlreadyExists):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConflict, "Student ID already exists").WithField("student_id")))
	case errors.Is(err, apperrors.ErrAlreadyRegistered):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConflict, "Student is already registered for this event")))
	case errors.Is(err, apperrors.ErrAlreadyCheckedIn):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConflict, "Student has already checked in to this event")))
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConflict, "Conflict")))
	case errors.Is(err, apperrors.ErrInvalidAttendanceStatus):
		c.JSON(400, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Status must be \"attended\" or \"absent\"").WithField("status")))
	case errors.Is(err, apperrors.ErrInvalidRating):
		c.JSON(400, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Rating must be between 1 and 5").WithField("rating")))
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		message := "Validation failed"
		var customErr *apperrors.CustomError
		if errors.As(err, &customErr) && customErr.Message != "" {
			message = customErr.Message
		}
		c.JSON(400, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)))
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		c.JSON(500, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}

// HandleValidationError maps request binding failures to a 400 response.
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(400, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request: "+err.Error())))
}
