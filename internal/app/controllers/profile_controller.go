package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/app/services"
	"github.com/yigit/placement/internal/middleware"
)

// ProfileController handles the calling student's secondary profile
type ProfileController struct {
	profileService services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
	}
}

// GetCompletion returns the per-section completion of the calling student
// @Summary Get profile completion
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileCompletionResponse} "Completion retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Students only"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profile/completion [get]
func (c *ProfileController) GetCompletion(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx, c.profileService)
	if !ok {
		return
	}

	completion, err := c.profileService.GetCompletion(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(completion, ""))
}

// UpdateExtendedProfile merges the given fields into the calling student's secondary profile
// @Summary Update extended profile
// @Description Only the sections present in the body are written; their completion and the overall percentage are recomputed.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ExtendedProfile true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileCompletionResponse} "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Students only"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profile/extended [patch]
func (c *ProfileController) UpdateExtendedProfile(ctx *gin.Context) {
	var patch models.ExtendedProfile
	if !middleware.BindJSON(ctx, &patch) {
		return
	}

	studentID, ok := currentStudentID(ctx, c.profileService)
	if !ok {
		return
	}

	completion, err := c.profileService.UpdateExtendedProfile(ctx.Request.Context(), studentID, &patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(completion, "Profile updated"))
}
