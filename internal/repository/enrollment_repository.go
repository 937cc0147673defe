package repository

import (
	"learnhub_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// Create inserts the enrollment. A duplicate (user, course) pair fails the
// composite unique index and comes back as gorm.ErrDuplicatedKey; callers
// must treat that as a conflict, not retry.
func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return normalizeDuplicate(r.DB.Create(enrollment).Error)
}

func (r *EnrollmentRepository) FindByIDAndUser(id, userID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) ListByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("user_id = ?", userID).
		Preload("Course").Preload("Course.Teacher").
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}

// UpdateProgress sets progress and lastAccessed, and when progress reaches
// 100 marks completion in the same UPDATE so no durable state can show
// progress=100 with completed=false. COALESCE keeps completedAt monotonic:
// once set it is never moved, and a progress report below 100 after
// completion never clears the flags.
func (r *EnrollmentRepository) UpdateProgress(id uint, progress int) (*model.Enrollment, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"progress":      progress,
		"last_accessed": now,
	}
	if progress == 100 {
		updates["completed"] = true
		updates["completed_at"] = gorm.Expr("COALESCE(completed_at, ?)", now)
	}

	if err := r.DB.Model(&model.Enrollment{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	var enrollment model.Enrollment
	if err := r.DB.First(&enrollment, id).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// MarkCompleted transitions an enrollment to its terminal state. The
// completed=false guard makes the check-and-set atomic: of two concurrent
// completion calls exactly one observes rowsAffected=1.
func (r *EnrollmentRepository) MarkCompleted(id uint) (bool, error) {
	now := time.Now()
	res := r.DB.Model(&model.Enrollment{}).
		Where("id = ? AND completed = ?", id, false).
		Updates(map[string]interface{}{
			"completed":     true,
			"completed_at":  now,
			"progress":      100,
			"last_accessed": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CountByCourse is the source of truth the counter synchronizer recomputes
// from.
func (r *EnrollmentRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

// DeleteByCourse bulk-removes enrollments when a course is deleted. The
// caller is responsible for triggering a counter resync afterwards.
func (r *EnrollmentRepository) DeleteByCourse(courseID uint) error {
	return r.DB.Where("course_id = ?", courseID).Delete(&model.Enrollment{}).Error
}
