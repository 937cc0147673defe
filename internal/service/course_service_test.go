package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCourseService(env *testEnv) *CourseService {
	return NewCourseService(env.courses, env.enrollment)
}

func TestCreateCourseAppliesDefaults(t *testing.T) {
	env := newTestEnv(t)
	svc := newCourseService(env)
	teacher := env.createUser(t, "Grace", model.Teacher)

	course, err := svc.Create(teacher.ID, CreateCourseInput{
		Title:       "Go Fundamentals",
		Description: "intro",
	})
	require.NoError(t, err)

	assert.Equal(t, "General", course.Category)
	assert.Equal(t, model.Beginner, course.Level)
	assert.True(t, course.IsActive)
	assert.Equal(t, int64(0), course.EnrolledStudents)
}

func TestGetReturnsActiveCoursesOnly(t *testing.T) {
	env := newTestEnv(t)
	svc := newCourseService(env)
	teacher := env.createUser(t, "Grace", model.Teacher)
	course := env.createCourse(t, teacher, "Go Fundamentals")

	got, err := svc.Get(course.ID)
	require.NoError(t, err)
	assert.Equal(t, course.Title, got.Title)

	require.NoError(t, env.db.Model(course).Update("is_active", false).Error)

	_, err = svc.Get(course.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestListFiltersByCategory(t *testing.T) {
	env := newTestEnv(t)
	svc := newCourseService(env)
	teacher := env.createUser(t, "Grace", model.Teacher)

	_, err := svc.Create(teacher.ID, CreateCourseInput{Title: "Go", Description: "d", Category: "Programming"})
	require.NoError(t, err)
	_, err = svc.Create(teacher.ID, CreateCourseInput{Title: "Cooking", Description: "d", Category: "Lifestyle"})
	require.NoError(t, err)

	all, total, err := svc.List("", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	programming, total, err := svc.List("Programming", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, programming, 1)
	assert.Equal(t, "Go", programming[0].Title)
}

func TestDeleteCascadesEnrollments(t *testing.T) {
	env := newTestEnv(t)
	svc := newCourseService(env)
	teacher := env.createUser(t, "Grace", model.Teacher)
	student := env.createUser(t, "Ada", model.Student)
	course := env.createCourse(t, teacher, "Go Fundamentals")

	_, err := env.enrollment.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(course.ID, teacher.ID, model.Teacher))

	count, err := env.enrolls.CountByCourse(course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = svc.Get(course.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	env := newTestEnv(t)
	svc := newCourseService(env)
	owner := env.createUser(t, "Grace", model.Teacher)
	other := env.createUser(t, "Mallory", model.Teacher)
	admin := env.createUser(t, "Root", model.Admin)
	course := env.createCourse(t, owner, "Go Fundamentals")

	err := svc.Delete(course.ID, other.ID, model.Teacher)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// admins may delete any course
	require.NoError(t, svc.Delete(course.ID, admin.ID, model.Admin))
}
