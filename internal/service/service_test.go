package service

import (
	"fmt"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/pkg/database"
	"learnhub_backend/pkg/logger"
	"path/filepath"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

// newTestDB opens a file-backed sqlite database so concurrent writers
// contend on real storage-layer unique constraints, the same guard the
// production MySQL schema relies on.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "learnhub_test.db") + "?_pragma=busy_timeout(10000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	return db
}

type testEnv struct {
	db       *gorm.DB
	users    *repository.UserRepository
	courses  *repository.CourseRepository
	enrolls  *repository.EnrollmentRepository
	certs    *repository.CertificateRepository
	notifier *recordingNotifier

	counter     *EnrollmentCounter
	enrollment  *EnrollmentService
	certificate *CertificateService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	env := &testEnv{
		db:       db,
		users:    repository.NewUserRepository(db),
		courses:  repository.NewCourseRepository(db),
		enrolls:  repository.NewEnrollmentRepository(db),
		certs:    repository.NewCertificateRepository(db),
		notifier: &recordingNotifier{},
	}

	env.counter = NewEnrollmentCounter(env.enrolls, env.courses)
	env.enrollment = NewEnrollmentService(env.enrolls, env.courses, env.counter, env.notifier)
	env.certificate = NewCertificateService(env.certs, env.enrolls, env.courses, env.users, nil, env.notifier, nil, nil)
	return env
}

// recordingNotifier captures emitted events so tests can assert on the
// fire-and-forget channel without a database round trip.
type recordingNotifier struct {
	mu     sync.Mutex
	events []model.NotificationType
}

func (n *recordingNotifier) Notify(userID uint, typ model.NotificationType, title, message string, data map[string]interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, typ)
}

func (n *recordingNotifier) has(typ model.NotificationType) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, e := range n.events {
		if e == typ {
			return true
		}
	}
	return false
}

var userSeq int

func (e *testEnv) createUser(t *testing.T, name string, role model.UserRole) *model.User {
	t.Helper()
	userSeq++
	user := &model.User{
		Name:     name,
		Email:    fmt.Sprintf("%s%d@learnhub.test", role, userSeq),
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, e.users.Create(user))
	return user
}

func (e *testEnv) createCourse(t *testing.T, teacher *model.User, title string) *model.Course {
	t.Helper()
	course := &model.Course{
		Title:       title,
		Description: "test course",
		TeacherID:   teacher.ID,
		IsActive:    true,
	}
	require.NoError(t, e.courses.Create(course))
	return course
}

func (e *testEnv) enrolledCount(t *testing.T, courseID uint) int64 {
	t.Helper()
	var course model.Course
	require.NoError(t, e.db.First(&course, courseID).Error)
	return course.EnrolledStudents
}
