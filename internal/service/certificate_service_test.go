package service

import (
	"fmt"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var verificationCodePattern = regexp.MustCompile(`^LH-\d{4}-[A-Z0-9]{6}$`)

func (e *testEnv) completeEnrollment(t *testing.T, userID, courseID uint) *model.Enrollment {
	t.Helper()
	enrollment, err := e.enrollment.Enroll(userID, courseID)
	require.NoError(t, err)
	completed, err := e.enrollment.Complete(enrollment.ID, userID)
	require.NoError(t, err)
	return completed
}

func TestIssueRequiresCompletedEnrollment(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "Grace", model.Teacher)
	student := env.createUser(t, "Ada", model.Student)
	course := env.createCourse(t, teacher, "Go Fundamentals")

	// no enrollment at all
	_, err := env.certificate.Issue(student.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotCompleted)

	// enrolled but not completed, even at 99 percent
	enrollment, err := env.enrollment.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	_, err = env.enrollment.RecordProgress(enrollment.ID, student.ID, 99)
	require.NoError(t, err)

	_, err = env.certificate.Issue(student.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotCompleted)
}

func TestIssueProducesVerifiableCertificate(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "Grace", model.Teacher)
	student := env.createUser(t, "Ada", model.Student)
	course := env.createCourse(t, teacher, "Go Fundamentals")
	env.completeEnrollment(t, student.ID, course.ID)

	cert, err := env.certificate.Issue(student.ID, course.ID)
	require.NoError(t, err)

	assert.Regexp(t, verificationCodePattern, cert.VerificationCode)
	assert.Contains(t, cert.VerificationCode, fmt.Sprintf("-%d-", time.Now().Year()))
	assert.NotEmpty(t, cert.CertificateURL)
	assert.True(t, cert.IsValid)
	assert.False(t, cert.IssuedAt.IsZero())
	assert.True(t, env.notifier.has(model.NotifyCertificateIssued))
}

func TestIssueTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "Grace", model.Teacher)
	student := env.createUser(t, "Ada", model.Student)
	course := env.createCourse(t, teacher, "Go Fundamentals")
	env.completeEnrollment(t, student.ID, course.ID)

	_, err := env.certificate.Issue(student.ID, course.ID)
	require.NoError(t, err)

	_, err = env.certificate.Issue(student.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrCertificateExists)

	var count int64
	require.NoError(t, env.db.Model(&model.Certificate{}).
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestIssueConcurrentRequestsYieldOneCertificate(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "Grace", model.Teacher)
	student := env.createUser(t, "Ada", model.Student)
	course := env.createCourse(t, teacher, "Go Fundamentals")
	env.completeEnrollment(t, student.ID, course.ID)

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.certificate.Issue(student.ID, course.ID)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, util.ErrCertificateExists)
		}
	}
	assert.Equal(t, 1, successes)

	var count int64
	require.NoError(t, env.db.Model(&model.Certificate{}).
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestVerifyReturnsPublicViewOnly(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "Grace", model.Teacher)
	student := env.createUser(t, "Ada", model.Student)
	course := env.createCourse(t, teacher, "Go Fundamentals")
	env.completeEnrollment(t, student.ID, course.ID)

	cert, err := env.certificate.Issue(student.ID, course.ID)
	require.NoError(t, err)

	view, err := env.certificate.Verify(cert.VerificationCode)
	require.NoError(t, err)

	assert.Equal(t, "Ada", view.UserName)
	assert.Equal(t, "Go Fundamentals", view.CourseTitle)
	assert.Equal(t, "Grace", view.TeacherName)
	assert.Equal(t, cert.VerificationCode, view.VerificationCode)
	assert.WithinDuration(t, cert.IssuedAt, view.IssuedAt, time.Second)
}

func TestVerifyUnknownCodeNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.certificate.Verify("LH-2026-ZZZZZZ")
	assert.ErrorIs(t, err, util.ErrCertificateNotFound)
}

func TestRevokedCertificateIndistinguishableFromUnknown(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "Grace", model.Teacher)
	student := env.createUser(t, "Ada", model.Student)
	course := env.createCourse(t, teacher, "Go Fundamentals")
	env.completeEnrollment(t, student.ID, course.ID)

	cert, err := env.certificate.Issue(student.ID, course.ID)
	require.NoError(t, err)

	require.NoError(t, env.certificate.Revoke(cert.ID))

	_, revokedErr := env.certificate.Verify(cert.VerificationCode)
	_, unknownErr := env.certificate.Verify("LH-2026-ZZZZZZ")
	assert.ErrorIs(t, revokedErr, util.ErrCertificateNotFound)
	assert.Equal(t, unknownErr, revokedErr)

	// the record itself survives revocation
	stored, err := env.certs.FindByID(cert.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsValid)
}

func TestRevokeUnknownCertificate(t *testing.T) {
	env := newTestEnv(t)

	err := env.certificate.Revoke(9999)
	assert.ErrorIs(t, err, util.ErrCertificateNotFound)
}

func TestListForLearnerResolvesCertificateCourseInfo(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "Grace", model.Teacher)
	student := env.createUser(t, "Ada", model.Student)
	first := env.createCourse(t, teacher, "Go Fundamentals")
	second := env.createCourse(t, teacher, "Distributed Systems")

	env.completeEnrollment(t, student.ID, first.ID)
	env.completeEnrollment(t, student.ID, second.ID)
	_, err := env.certificate.Issue(student.ID, first.ID)
	require.NoError(t, err)
	_, err = env.certificate.Issue(student.ID, second.ID)
	require.NoError(t, err)

	list, err := env.certificate.ListForLearner(student.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	for _, item := range list {
		assert.Equal(t, "Grace", item.CourseInfo.TeacherName)
		assert.Regexp(t, verificationCodePattern, item.VerificationCode)
		assert.Nil(t, item.Course)
	}
}

func TestVerificationCodesAreUniquePerCertificate(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "Grace", model.Teacher)
	student := env.createUser(t, "Ada", model.Student)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		course := env.createCourse(t, teacher, fmt.Sprintf("Course %d", i))
		env.completeEnrollment(t, student.ID, course.ID)
		cert, err := env.certificate.Issue(student.ID, course.ID)
		require.NoError(t, err)
		assert.False(t, seen[cert.VerificationCode])
		seen[cert.VerificationCode] = true
	}
}

func TestLearnerJourney(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "Grace", model.Teacher)
	student := env.createUser(t, "Ada", model.Student)
	course := env.createCourse(t, teacher, "Go Fundamentals")

	enrollment, err := env.enrollment.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), env.enrolledCount(t, course.ID))

	// too early for a certificate
	_, err = env.certificate.Issue(student.ID, course.ID)
	require.ErrorIs(t, err, util.ErrCourseNotCompleted)

	_, err = env.enrollment.RecordProgress(enrollment.ID, student.ID, 60)
	require.NoError(t, err)
	final, err := env.enrollment.RecordProgress(enrollment.ID, student.ID, 100)
	require.NoError(t, err)
	require.True(t, final.Completed)

	cert, err := env.certificate.Issue(student.ID, course.ID)
	require.NoError(t, err)

	_, err = env.certificate.Issue(student.ID, course.ID)
	require.ErrorIs(t, err, util.ErrCertificateExists)

	view, err := env.certificate.Verify(cert.VerificationCode)
	require.NoError(t, err)
	assert.Equal(t, "Go Fundamentals", view.CourseTitle)

	_, err = env.certificate.Verify("LH-2026-AAAAAA")
	assert.ErrorIs(t, err, util.ErrCertificateNotFound)
}
