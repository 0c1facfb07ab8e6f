package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/akshat/campushub/internal/app/models/dto"
	"github.com/akshat/campushub/internal/app/services"
	"github.com/akshat/campushub/internal/middleware"
)

// RegistrationController handles registration-related operations
type RegistrationController struct {
	registrationService *services.RegistrationService
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(registrationService *services.RegistrationService) *RegistrationController {
	return &RegistrationController{registrationService: registrationService}
}

// GetAllRegistrations retrieves all registrations
// @Summary Get all registrations
// @Description Retrieves all registrations with joined student and event details
// @Tags registrations
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.RegistrationInfo} "Registrations retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /registrations [get]
func (c *RegistrationController) GetAllRegistrations(ctx *gin.Context) {
	registrations, err := c.registrationService.GetAllRegistrations(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(registrations))
}

// CreateRegistration registers a student for an event
// @Summary Register a student for an event
// @Description Creates a registration; a second registration for the same pair is rejected
// @Tags registrations
// @Accept json
// @Produce json
// @Param request body dto.CreateRegistrationRequest true "Registration information"
// @Success 201 {object} dto.APIResponse "Registration created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Student is already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /registrations [post]
func (c *RegistrationController) CreateRegistration(ctx *gin.Context) {
	var req dto.CreateRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	id, err := c.registrationService.CreateRegistration(ctx, req.StudentID, req.EventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(gin.H{"id": id}))
}

// VerifyRegistration marks one registration as verified
// @Summary Verify a registration
// @Description Marks a registration as verified
// @Tags registrations
// @Produce json
// @Param id path int true "Registration ID"
// @Success 200 {object} dto.APIResponse "Registration verified successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid registration ID"
// @Failure 404 {object} dto.ErrorResponse "Registration not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /registrations/{id}/verify [put]
func (c *RegistrationController) VerifyRegistration(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration ID")))
		return
	}

	if err := c.registrationService.VerifyRegistration(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Registration verified successfully"))
}

// VerifyAllRegistrations marks every registration as verified
// @Summary Verify all registrations
// @Description Marks every unverified registration as verified
// @Tags registrations
// @Produce json
// @Success 200 {object} dto.APIResponse "Registrations verified successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /registrations/verify-all [put]
func (c *RegistrationController) VerifyAllRegistrations(ctx *gin.Context) {
	count, err := c.registrationService.VerifyAllRegistrations(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse(
		fmt.Sprintf("Verified %d registrations", count)))
}

// DeleteRegistration removes one registration
// @Summary Delete a registration
// @Description Removes a registration and echoes the affected student and event
// @Tags registrations
// @Produce json
// @Param id path int true "Registration ID"
// @Success 200 {object} dto.DeletedRegistrationResponse "Registration deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid registration ID"
// @Failure 404 {object} dto.ErrorResponse "Registration not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /registrations/{id} [delete]
func (c *RegistrationController) DeleteRegistration(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration ID")))
		return
	}

	info, err := c.registrationService.DeleteRegistration(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeletedRegistrationResponse{
		Message:      "Registration deleted successfully",
		StudentName:  info.StudentName,
		StudentEmail: info.StudentEmail,
		EventTitle:   info.EventTitle,
	})
}

// DeleteAllRegistrations removes every registration
// @Summary Delete all registrations
// @Description Removes all registrations and lists what was removed
// @Tags registrations
// @Produce json
// @Success 200 {object} dto.BulkDeletedRegistrationsResponse "Registrations deleted successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /registrations [delete]
func (c *RegistrationController) DeleteAllRegistrations(ctx *gin.Context) {
	infos, err := c.registrationService.DeleteAllRegistrations(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BulkDeletedRegistrationsResponse{
		Message:              fmt.Sprintf("Deleted %d registrations", len(infos)),
		DeletedRegistrations: infos,
	})
}
