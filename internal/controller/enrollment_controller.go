package controller

import (
	"errors"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	service *service.EnrollmentService
}

func NewEnrollmentController(s *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{service: s}
}

type EnrollRequest struct {
	CourseID uint `json:"courseId" binding:"required"`
}

type UpdateProgressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

// Enroll godoc
// @Summary Enroll the authenticated learner in a course
// @Tags enrollments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Router /api/enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Course ID is required")
		return
	}

	enrollment, err := c.service.Enroll(user.UserID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFoundMessage(ctx, err.Error())
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, enrollment)
}

// ListEnrollments godoc
// @Summary List the authenticated learner's enrollments
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Router /api/enrollments [get]
func (c *EnrollmentController) ListEnrollments(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollments, err := c.service.ListForLearner(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"enrollments": enrollments})
}

// UpdateProgress godoc
// @Summary Record watch progress for an enrollment (0-100)
// @Tags enrollments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Router /api/enrollments/{id}/progress [put]
func (c *EnrollmentController) UpdateProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid enrollment id")
		return
	}

	var req UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Progress == nil {
		util.BadRequest(ctx, util.ErrInvalidProgress.Error())
		return
	}

	enrollment, err := c.service.RecordProgress(uint(id), user.UserID, *req.Progress)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidProgress):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrEnrollmentNotFound):
			util.NotFoundMessage(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, enrollment)
}

// Complete godoc
// @Summary Explicitly mark an enrollment completed
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Router /api/enrollments/{id}/complete [put]
func (c *EnrollmentController) Complete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid enrollment id")
		return
	}

	enrollment, err := c.service.Complete(uint(id), user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEnrollmentNotFound):
			util.NotFoundMessage(ctx, err.Error())
		case errors.Is(err, util.ErrAlreadyCompleted):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, enrollment)
}
