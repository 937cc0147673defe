package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Teacher").First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// FindActiveByID is the existence/active lookup the enrollment store
// consults before creating a record.
func (r *CourseRepository) FindActiveByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Teacher").Where("id = ? AND is_active = ?", id, true).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) ListActive(category string, page, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	query := r.DB.Model(&model.Course{}).Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page > 0 && limit > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	err := query.Preload("Teacher").Order("created_at DESC").Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Course{}, id).Error
}

// SetEnrolledStudents writes the denormalized counter. UpdateColumn skips
// hooks and UpdatedAt so counter syncs do not masquerade as course edits.
// Only the enrollment counter synchronizer may call this.
func (r *CourseRepository) SetEnrolledStudents(courseID uint, count int64) error {
	return r.DB.Model(&model.Course{}).Where("id = ?", courseID).
		UpdateColumn("enrolled_students", count).Error
}
