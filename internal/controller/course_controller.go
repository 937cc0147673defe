package controller

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	service *service.CourseService
}

func NewCourseController(s *service.CourseService) *CourseController {
	return &CourseController{service: s}
}

type CreateCourseRequest struct {
	Title       string  `json:"title" binding:"required,max=100"`
	Description string  `json:"description" binding:"required,max=1000"`
	Thumbnail   string  `json:"thumbnail"`
	VideoURL    string  `json:"videoUrl"`
	Category    string  `json:"category"`
	Level       string  `json:"level" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
	Duration    string  `json:"duration"`
	Price       float64 `json:"price"`
}

// ListCourses godoc
// @Summary List active courses
// @Tags courses
// @Produce json
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	category := ctx.Query("category")
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	courses, total, err := c.service.List(category, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"courses": courses,
		"total":   total,
		"page":    page,
	})
}

// GetCourse godoc
// @Summary Get one active course
// @Tags courses
// @Produce json
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	course, err := c.service.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFoundMessage(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, course)
}

// CreateCourse godoc
// @Summary Create a course (teacher)
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.service.Create(user.UserID, service.CreateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		VideoURL:    req.VideoURL,
		Category:    req.Category,
		Level:       model.CourseLevel(req.Level),
		Duration:    req.Duration,
		Price:       req.Price,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// DeleteCourse godoc
// @Summary Delete a course and its enrollments (owner teacher or admin)
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Router /api/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	if err := c.service.Delete(uint(id), user.UserID, user.Role); err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFoundMessage(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
