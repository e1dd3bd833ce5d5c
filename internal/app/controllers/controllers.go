package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/app/services"
	"github.com/yigit/placement/internal/middleware"
)

// parseIDParam reads a positive int64 path parameter, writing a 400 response
// when it is malformed.
func parseIDParam(ctx *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid "+label+" ID").
			WithDetails(label + " ID must be a positive number").
			WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// currentUser returns the caller identity, writing a 401 response when the
// request is unauthenticated.
func currentUser(ctx *gin.Context) (models.AuthContext, bool) {
	authCtx, ok := middleware.GetAuthContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return models.AuthContext{}, false
	}
	return authCtx, true
}

// currentStudentID maps the calling user to their student profile
func currentStudentID(ctx *gin.Context, profiles services.ProfileService) (int64, bool) {
	authCtx, ok := currentUser(ctx)
	if !ok {
		return 0, false
	}
	student, err := profiles.ResolveStudent(ctx.Request.Context(), authCtx.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return 0, false
	}
	return student.ID, true
}
