package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/app/services"
	"github.com/yigit/placement/internal/middleware"
)

// ApplicationController exposes recorded applications to officers
type ApplicationController struct {
	applicationService services.ApplicationService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService services.ApplicationService) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
	}
}

// GetSnapshot returns the profile snapshot taken when the application was submitted
// @Summary Get application snapshot
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param applicationId path int true "Application ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.ApplicationSnapshot} "Snapshot retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid application ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Officers only"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{applicationId}/snapshot [get]
func (c *ApplicationController) GetSnapshot(ctx *gin.Context) {
	applicationID, ok := parseIDParam(ctx, "applicationId", "application")
	if !ok {
		return
	}

	snapshot, err := c.applicationService.GetSnapshot(ctx.Request.Context(), applicationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(snapshot, ""))
}
