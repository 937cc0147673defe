package service

import (
	"learnhub_backend/internal/repository"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// EnrollmentCounter keeps each course's denormalized enrolled-students
// field consistent with the live enrollment rows. It recomputes from the
// source of truth instead of incrementing, so a crashed or lost update is
// repaired by whichever sync runs next; concurrent syncs for the same
// course are each independently correct and need no coordination.
type EnrollmentCounter struct {
	enrollments *repository.EnrollmentRepository
	courses     *repository.CourseRepository
}

func NewEnrollmentCounter(enrollments *repository.EnrollmentRepository, courses *repository.CourseRepository) *EnrollmentCounter {
	return &EnrollmentCounter{enrollments: enrollments, courses: courses}
}

// Sync recomputes and persists the enrolled count for one course.
func (s *EnrollmentCounter) Sync(courseID uint) error {
	count, err := s.enrollments.CountByCourse(courseID)
	if err != nil {
		monitoring.EnrollmentCounterSyncs.WithLabelValues("error").Inc()
		return err
	}

	if err := s.courses.SetEnrolledStudents(courseID, count); err != nil {
		monitoring.EnrollmentCounterSyncs.WithLabelValues("error").Inc()
		return err
	}

	monitoring.EnrollmentCounterSyncs.WithLabelValues("ok").Inc()
	return nil
}

// SyncBestEffort is what mutations call after the enrollment write has
// committed. A failed sync is logged, never propagated: the enrollment
// itself is durable and the next mutation's sync converges the counter.
func (s *EnrollmentCounter) SyncBestEffort(courseID uint) {
	if err := s.Sync(courseID); err != nil {
		logger.Log.Error("enrolled-count sync failed, will converge on next mutation",
			zap.Uint("courseID", courseID),
			zap.Error(err))
	}
}
