package service

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

// CourseService is the course-catalog collaborator: it owns course records
// and exposes the lookups the enrollment and certificate cores depend on.
// It never writes the enrolled-students counter; that column belongs to
// the counter synchronizer.
type CourseService struct {
	courses     *repository.CourseRepository
	enrollments *EnrollmentService
}

func NewCourseService(courses *repository.CourseRepository, enrollments *EnrollmentService) *CourseService {
	return &CourseService{courses: courses, enrollments: enrollments}
}

type CreateCourseInput struct {
	Title       string
	Description string
	Thumbnail   string
	VideoURL    string
	Category    string
	Level       model.CourseLevel
	Duration    string
	Price       float64
}

func (s *CourseService) Create(teacherID uint, in CreateCourseInput) (*model.Course, error) {
	course := &model.Course{
		Title:       in.Title,
		Description: in.Description,
		Thumbnail:   in.Thumbnail,
		VideoURL:    in.VideoURL,
		TeacherID:   teacherID,
		Category:    in.Category,
		Level:       in.Level,
		Duration:    in.Duration,
		Price:       in.Price,
		IsActive:    true,
	}
	if course.Category == "" {
		course.Category = "General"
	}
	if course.Level == "" {
		course.Level = model.Beginner
	}

	if err := s.courses.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Get(id uint) (*model.Course, error) {
	course, err := s.courses.FindActiveByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) List(category string, page, limit int) ([]model.Course, int64, error) {
	return s.courses.ListActive(category, page, limit)
}

// Delete removes a course. Enrollments are bulk-removed first, which runs
// the counter sync for the removal exactly as enrollment creation does;
// only then is the course row itself deleted.
func (s *CourseService) Delete(id, actorID uint, role model.UserRole) error {
	course, err := s.courses.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}

	if role != model.Admin && course.TeacherID != actorID {
		return util.ErrPermissionDenied
	}

	if err := s.enrollments.RemoveForCourse(course.ID); err != nil {
		return err
	}

	return s.courses.Delete(course.ID)
}
