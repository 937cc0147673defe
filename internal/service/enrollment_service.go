package service

import (
	"errors"
	"fmt"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// EnrollmentService owns the enrollment lifecycle: creation, progress,
// completion and the course-deletion cascade. Callers are authenticated at
// the boundary; every operation takes the acting user's ID and only
// touches that user's records.
type EnrollmentService struct {
	enrollments *repository.EnrollmentRepository
	courses     *repository.CourseRepository
	counter     *EnrollmentCounter
	notifier    Notifier
}

func NewEnrollmentService(
	enrollments *repository.EnrollmentRepository,
	courses *repository.CourseRepository,
	counter *EnrollmentCounter,
	notifier Notifier,
) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		courses:     courses,
		counter:     counter,
		notifier:    notifier,
	}
}

// Enroll creates the learner's enrollment in a course. Duplicate requests
// are rejected by the storage-layer unique index, so a read-then-write
// race between two identical requests still yields exactly one record.
func (s *EnrollmentService) Enroll(userID, courseID uint) (*model.Enrollment, error) {
	course, err := s.courses.FindActiveByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	now := time.Now()
	enrollment := &model.Enrollment{
		UserID:       userID,
		CourseID:     courseID,
		EnrolledAt:   now,
		Progress:     0,
		LastAccessed: now,
	}

	if err := s.enrollments.Create(enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyEnrolled
		}
		return nil, err
	}

	s.counter.SyncBestEffort(courseID)

	s.notifier.Notify(userID, model.NotifyCourseEnrolled,
		"Course Enrollment",
		fmt.Sprintf("You have successfully enrolled in %q", course.Title),
		map[string]interface{}{
			"courseId":    course.ID,
			"courseTitle": course.Title,
		})

	return enrollment, nil
}

// RecordProgress sets the externally reported progress percentage. A value
// of 100 auto-completes the enrollment in the same write; completion is
// monotonic and survives later reports below 100.
func (s *EnrollmentService) RecordProgress(enrollmentID, userID uint, progress int) (*model.Enrollment, error) {
	if progress < 0 || progress > 100 {
		return nil, util.ErrInvalidProgress
	}

	enrollment, err := s.enrollments.FindByIDAndUser(enrollmentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEnrollmentNotFound
		}
		return nil, err
	}

	wasCompleted := enrollment.Completed

	updated, err := s.enrollments.UpdateProgress(enrollment.ID, progress)
	if err != nil {
		return nil, err
	}

	if updated.Completed && !wasCompleted {
		s.notifyCompleted(userID, updated.CourseID)
	}

	return updated, nil
}

// Complete is the explicit completion action. Calling it on an already
// completed enrollment is a caller bug and is rejected rather than
// silently accepted.
func (s *EnrollmentService) Complete(enrollmentID, userID uint) (*model.Enrollment, error) {
	enrollment, err := s.enrollments.FindByIDAndUser(enrollmentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEnrollmentNotFound
		}
		return nil, err
	}

	if enrollment.Completed {
		return nil, util.ErrAlreadyCompleted
	}

	transitioned, err := s.enrollments.MarkCompleted(enrollment.ID)
	if err != nil {
		return nil, err
	}
	if !transitioned {
		// lost the race against a concurrent completion
		return nil, util.ErrAlreadyCompleted
	}

	updated, err := s.enrollments.FindByIDAndUser(enrollmentID, userID)
	if err != nil {
		return nil, err
	}

	s.notifyCompleted(userID, updated.CourseID)

	return updated, nil
}

// ListForLearner returns the learner's enrollments with course and teacher
// display data resolved.
func (s *EnrollmentService) ListForLearner(userID uint) ([]model.EnrollmentWithCourse, error) {
	enrollments, err := s.enrollments.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	result := make([]model.EnrollmentWithCourse, 0, len(enrollments))
	for _, e := range enrollments {
		item := model.EnrollmentWithCourse{Enrollment: e}
		if e.Course != nil {
			item.CourseInfo = model.CourseSummary{
				ID:          e.Course.ID,
				Title:       e.Course.Title,
				Description: e.Course.Description,
				Thumbnail:   e.Course.Thumbnail,
			}
			if e.Course.Teacher != nil {
				item.CourseInfo.TeacherName = e.Course.Teacher.Name
			}
		}
		item.Course = nil
		result = append(result, item)
	}
	return result, nil
}

// RemoveForCourse bulk-deletes a course's enrollments as part of course
// deletion. The counter sync runs on removal exactly as it does on
// creation.
func (s *EnrollmentService) RemoveForCourse(courseID uint) error {
	if err := s.enrollments.DeleteByCourse(courseID); err != nil {
		return err
	}
	s.counter.SyncBestEffort(courseID)
	return nil
}

func (s *EnrollmentService) notifyCompleted(userID, courseID uint) {
	title := ""
	if course, err := s.courses.FindByID(courseID); err == nil {
		title = course.Title
	}
	s.notifier.Notify(userID, model.NotifyCourseCompleted,
		"Course Completed!",
		fmt.Sprintf("Congratulations! You've completed %q", title),
		map[string]interface{}{
			"courseId":    courseID,
			"courseTitle": title,
		})
}
