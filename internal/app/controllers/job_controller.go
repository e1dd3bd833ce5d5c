package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/app/services"
	"github.com/yigit/placement/internal/middleware"
)

// JobController handles the applicant-facing and cohort endpoints of a job
type JobController struct {
	eligibilityService services.EligibilityService
	applicationService services.ApplicationService
	profileService     services.ProfileService
}

// NewJobController creates a new JobController
func NewJobController(
	eligibilityService services.EligibilityService,
	applicationService services.ApplicationService,
	profileService services.ProfileService,
) *JobController {
	return &JobController{
		eligibilityService: eligibilityService,
		applicationService: applicationService,
		profileService:     profileService,
	}
}

// GetReadiness evaluates the calling student against a job without writing anything
// @Summary Check application readiness
// @Description Returns the itemized eligibility reasons of the calling student for a job. Advisory only.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param jobId path int true "Job ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.ReadinessResponse} "Readiness evaluated"
// @Failure 400 {object} dto.ErrorResponse "Invalid job ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Students only"
// @Failure 404 {object} dto.ErrorResponse "Job or student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jobs/{jobId}/readiness [get]
func (c *JobController) GetReadiness(ctx *gin.Context) {
	jobID, ok := parseIDParam(ctx, "jobId", "job")
	if !ok {
		return
	}
	studentID, ok := currentStudentID(ctx, c.profileService)
	if !ok {
		return
	}

	readiness, err := c.eligibilityService.CheckReadiness(ctx.Request.Context(), jobID, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(readiness, ""))
}

// GetMissingFields lists the profile data the calling student still has to supply
// @Summary List missing profile fields
// @Description Groups the missing fields of every required section with their labels, types and current values, plus the job's custom questions.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param jobId path int true "Job ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.MissingFieldsResponse} "Missing fields listed"
// @Failure 400 {object} dto.ErrorResponse "Invalid job ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Students only"
// @Failure 404 {object} dto.ErrorResponse "Job or student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jobs/{jobId}/missing-fields [get]
func (c *JobController) GetMissingFields(ctx *gin.Context) {
	jobID, ok := parseIDParam(ctx, "jobId", "job")
	if !ok {
		return
	}
	studentID, ok := currentStudentID(ctx, c.profileService)
	if !ok {
		return
	}

	missing, err := c.eligibilityService.GetMissingFields(ctx.Request.Context(), jobID, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(missing, ""))
}

// SubmitApplication applies the calling student to a job
// @Summary Submit an application
// @Description Applies optional profile updates, re-evaluates eligibility and records the application with an immutable snapshot. Fixable gaps (missing sections, field constraints, custom answers) abort with 422 and nothing is written; other failed criteria record the application as rejected.
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param jobId path int true "Job ID" Format(int64) minimum(1)
// @Param request body dto.SubmitApplicationRequest false "Profile updates and custom answers"
// @Success 201 {object} dto.APIResponse{data=dto.SubmitApplicationResponse} "Application recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Students only"
// @Failure 404 {object} dto.ErrorResponse "Job or student not found"
// @Failure 409 {object} dto.ErrorResponse "Already applied, deadline passed or job inactive"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jobs/{jobId}/applications [post]
func (c *JobController) SubmitApplication(ctx *gin.Context) {
	jobID, ok := parseIDParam(ctx, "jobId", "job")
	if !ok {
		return
	}

	var req dto.SubmitApplicationRequest
	if ctx.Request.ContentLength != 0 {
		if !middleware.BindJSON(ctx, &req) {
			return
		}
	}

	studentID, ok := currentStudentID(ctx, c.profileService)
	if !ok {
		return
	}

	result, err := c.applicationService.SubmitApplication(ctx.Request.Context(), jobID, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Application submitted"
	if !result.MeetsRequirements {
		message = "Application recorded as rejected"
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(result, message))
}

// GetEligibleCount evaluates the active cohort against a job
// @Summary Count eligible students
// @Description Evaluates every student of the active cohort against the job and returns the totals.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param jobId path int true "Job ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.EligibilityCountResponse} "Cohort evaluated"
// @Failure 400 {object} dto.ErrorResponse "Invalid job ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Officers only"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jobs/{jobId}/eligibility-count [get]
func (c *JobController) GetEligibleCount(ctx *gin.Context) {
	jobID, ok := parseIDParam(ctx, "jobId", "job")
	if !ok {
		return
	}

	count, err := c.eligibilityService.GetEligibleCount(ctx.Request.Context(), jobID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(count, ""))
}
