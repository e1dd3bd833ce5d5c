package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/placement/internal/app/controllers"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	jobController *controllers.JobController,
	requirementController *controllers.RequirementController,
	applicationController *controllers.ApplicationController,
	profileController *controllers.ProfileController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", healthController.Health)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	studentOnly := authMiddleware.RoleRequired(models.RoleStudent)
	officerOnly := authMiddleware.RoleRequired(models.RoleOfficer, models.RoleAdmin)

	jobs := authenticated.Group("/jobs/:jobId")
	{
		// Applicant routes
		jobs.GET("/readiness", studentOnly, jobController.GetReadiness)
		jobs.GET("/missing-fields", studentOnly, jobController.GetMissingFields)
		jobs.POST("/applications", studentOnly, jobController.SubmitApplication)

		// Officer tooling
		jobs.GET("/eligibility-count", officerOnly, jobController.GetEligibleCount)
		jobs.GET("/requirements", officerOnly, requirementController.GetRequirementSpec)
		jobs.PUT("/requirements", officerOnly, requirementController.SaveRequirementSpec)
		jobs.POST("/requirements/template/:templateId", officerOnly, requirementController.ApplyTemplate)
	}

	templates := authenticated.Group("/requirement-templates")
	templates.Use(officerOnly)
	{
		templates.GET("", requirementController.ListTemplates)
		templates.POST("", requirementController.CreateTemplate)
	}

	applications := authenticated.Group("/applications")
	applications.Use(officerOnly)
	{
		applications.GET("/:applicationId/snapshot", applicationController.GetSnapshot)
	}

	profile := authenticated.Group("/profile")
	profile.Use(studentOnly)
	{
		profile.GET("/completion", profileController.GetCompletion)
		profile.PATCH("/extended", profileController.UpdateExtendedProfile)
	}
}
