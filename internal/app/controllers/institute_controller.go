package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshat/campushub/internal/app/models/dto"
	"github.com/akshat/campushub/internal/app/services"
)

// InstituteController serves the institute list
type InstituteController struct {
	instituteService *services.InstituteService
}

// NewInstituteController creates a new InstituteController
func NewInstituteController(instituteService *services.InstituteService) *InstituteController {
	return &InstituteController{instituteService: instituteService}
}

// GetInstitutes retrieves the institute names
// @Summary Get institutes
// @Description Retrieves the fixed list of institutes offered in forms
// @Tags institutes
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]string} "Institutes retrieved successfully"
// @Router /institutes [get]
func (c *InstituteController) GetInstitutes(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(c.instituteService.GetInstitutes()))
}
