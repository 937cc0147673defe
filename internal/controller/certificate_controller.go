package controller

import (
	"errors"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	service *service.CertificateService
}

func NewCertificateController(s *service.CertificateService) *CertificateController {
	return &CertificateController{service: s}
}

type IssueCertificateRequest struct {
	CourseID uint `json:"courseId" binding:"required"`
}

// Issue godoc
// @Summary Issue the completion certificate for a finished course
// @Tags certificates
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Router /api/certificates [post]
func (c *CertificateController) Issue(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req IssueCertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Course ID is required")
		return
	}

	cert, err := c.service.Issue(user.UserID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotCompleted):
			util.PreconditionFailed(ctx, err.Error())
		case errors.Is(err, util.ErrCertificateExists):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrCodeExhausted):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, cert)
}

// ListCertificates godoc
// @Summary List the authenticated learner's certificates
// @Tags certificates
// @Produce json
// @Security ApiKeyAuth
// @Router /api/certificates [get]
func (c *CertificateController) ListCertificates(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	certs, err := c.service.ListForLearner(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"certificates": certs})
}

// Verify godoc
// @Summary Publicly verify a certificate by its code
// @Description No authentication. Unknown and revoked codes are both 404.
// @Tags certificates
// @Produce json
// @Router /api/certificates/verify/{code} [get]
func (c *CertificateController) Verify(ctx *gin.Context) {
	code := ctx.Param("code")
	if code == "" {
		util.BadRequest(ctx, "verification code is required")
		return
	}

	view, err := c.service.Verify(code)
	if err != nil {
		if errors.Is(err, util.ErrCertificateNotFound) {
			util.NotFoundMessage(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"valid": true, "certificate": view})
}

// Revoke godoc
// @Summary Revoke a certificate (admin)
// @Tags certificates
// @Produce json
// @Security ApiKeyAuth
// @Router /api/certificates/{id}/revoke [put]
func (c *CertificateController) Revoke(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid certificate id")
		return
	}

	if err := c.service.Revoke(uint(id)); err != nil {
		if errors.Is(err, util.ErrCertificateNotFound) {
			util.NotFoundMessage(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
