package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/app/services"
	"github.com/yigit/placement/internal/middleware"
	"github.com/yigit/placement/internal/pkg/helpers"
)

// RequirementController handles requirement specs and company templates
type RequirementController struct {
	requirementService services.RequirementService
}

// NewRequirementController creates a new RequirementController
func NewRequirementController(requirementService services.RequirementService) *RequirementController {
	return &RequirementController{
		requirementService: requirementService,
	}
}

// GetRequirementSpec returns the requirement spec bound to a job
// @Summary Get job requirements
// @Tags requirements
// @Produce json
// @Security BearerAuth
// @Param jobId path int true "Job ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.RequirementSpec} "Requirement spec retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid job ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Officers only"
// @Failure 404 {object} dto.ErrorResponse "Job or requirement spec not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jobs/{jobId}/requirements [get]
func (c *RequirementController) GetRequirementSpec(ctx *gin.Context) {
	jobID, ok := parseIDParam(ctx, "jobId", "job")
	if !ok {
		return
	}

	spec, err := c.requirementService.GetRequirementSpec(ctx.Request.Context(), jobID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(spec, ""))
}

// SaveRequirementSpec creates or replaces the requirement spec of a job
// @Summary Set job requirements
// @Description Replaces the job's requirement spec. Criteria set here override the posting's own thresholds.
// @Tags requirements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param jobId path int true "Job ID" Format(int64) minimum(1)
// @Param request body models.Requirements true "Requirements"
// @Success 200 {object} dto.APIResponse{data=models.RequirementSpec} "Requirement spec saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Officers only"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jobs/{jobId}/requirements [put]
func (c *RequirementController) SaveRequirementSpec(ctx *gin.Context) {
	jobID, ok := parseIDParam(ctx, "jobId", "job")
	if !ok {
		return
	}

	var reqs models.Requirements
	if !middleware.BindJSON(ctx, &reqs) {
		return
	}

	spec, err := c.requirementService.SaveRequirementSpec(ctx.Request.Context(), jobID, &reqs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(spec, "Requirement spec saved"))
}

// ApplyTemplate copies a company template into a job's requirement spec
// @Summary Apply a company template to a job
// @Tags requirements
// @Produce json
// @Security BearerAuth
// @Param jobId path int true "Job ID" Format(int64) minimum(1)
// @Param templateId path int true "Template ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.RequirementSpec} "Template applied"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Officers only"
// @Failure 404 {object} dto.ErrorResponse "Job or template not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jobs/{jobId}/requirements/template/{templateId} [post]
func (c *RequirementController) ApplyTemplate(ctx *gin.Context) {
	jobID, ok := parseIDParam(ctx, "jobId", "job")
	if !ok {
		return
	}
	templateID, ok := parseIDParam(ctx, "templateId", "template")
	if !ok {
		return
	}

	spec, err := c.requirementService.ApplyTemplate(ctx.Request.Context(), jobID, templateID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(spec, "Template applied"))
}

// ListTemplates returns one page of company templates
// @Summary List company templates
// @Tags requirements
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param size query int false "Items per page" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.TemplateListResponse} "Templates listed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Officers only"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /requirement-templates [get]
func (c *RequirementController) ListTemplates(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	templates, err := c.requirementService.ListTemplates(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(templates, ""))
}

// CreateTemplate stores a reusable company template
// @Summary Create a company template
// @Tags requirements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTemplateRequest true "Template"
// @Success 201 {object} dto.APIResponse{data=models.CompanyTemplate} "Template created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Officers only"
// @Failure 409 {object} dto.ErrorResponse "Template already exists for the company"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /requirement-templates [post]
func (c *RequirementController) CreateTemplate(ctx *gin.Context) {
	authCtx, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateTemplateRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	tmpl, err := c.requirementService.CreateTemplate(ctx.Request.Context(), &req, authCtx.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(tmpl, "Template created"))
}
