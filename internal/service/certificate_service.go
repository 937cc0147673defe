package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// 36^6 code suffixes make accidental collision negligible; the unique
	// index catches the rest and generation is retried.
	codeAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeSuffixLen    = 6
	maxCodeAttempts  = 5
	verifyCachePref  = "certificate:verify:"
	verifyCacheTTL   = 10 * time.Minute
	manifestMimeType = "application/json"
)

// CertificateService issues, lists, verifies and revokes completion
// certificates. Issuance consumes completed-enrollment facts only; it
// never inspects raw progress.
type CertificateService struct {
	certificates *repository.CertificateRepository
	enrollments  *repository.EnrollmentRepository
	courses      *repository.CourseRepository
	users        *repository.UserRepository
	storage      *StorageService
	notifier     Notifier
	rdb          *redis.Client
	cfg          *config.CertificateConfig
}

func NewCertificateService(
	certificates *repository.CertificateRepository,
	enrollments *repository.EnrollmentRepository,
	courses *repository.CourseRepository,
	users *repository.UserRepository,
	storage *StorageService,
	notifier Notifier,
	rdb *redis.Client,
	cfg *config.CertificateConfig,
) *CertificateService {
	return &CertificateService{
		certificates: certificates,
		enrollments:  enrollments,
		courses:      courses,
		users:        users,
		storage:      storage,
		notifier:     notifier,
		rdb:          rdb,
		cfg:          cfg,
	}
}

// Issue creates the one-and-only certificate for a completed enrollment.
// The existence pre-check gives clean errors; the unique index on
// (user, course) is what actually guarantees single issuance when two
// requests race, and a verification-code collision regenerates the code
// instead of failing the caller.
func (s *CertificateService) Issue(userID, courseID uint) (*model.Certificate, error) {
	enrollment, err := s.enrollments.FindByUserAndCourse(userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotCompleted
		}
		return nil, err
	}
	if !enrollment.Completed {
		return nil, util.ErrCourseNotCompleted
	}

	exists, err := s.certificates.ExistsForUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrCertificateExists
	}

	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := s.generateVerificationCode()
		if err != nil {
			return nil, err
		}

		cert := &model.Certificate{
			UserID:           userID,
			CourseID:         courseID,
			VerificationCode: code,
			CertificateURL:   s.renderArtifact(user, course, code),
			IssuedAt:         time.Now(),
			IsValid:          true,
		}

		if err := s.certificates.Create(cert); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Decide which constraint fired: a concurrent issuance for
				// the same pair is a conflict, a code collision is retried.
				pairExists, checkErr := s.certificates.ExistsForUserAndCourse(userID, courseID)
				if checkErr == nil && pairExists {
					return nil, util.ErrCertificateExists
				}
				continue
			}
			return nil, err
		}

		monitoring.CertificatesIssued.Inc()

		s.notifier.Notify(userID, model.NotifyCertificateIssued,
			"Certificate Issued!",
			fmt.Sprintf("Your certificate for %q is ready for download", course.Title),
			map[string]interface{}{
				"courseId":      course.ID,
				"courseTitle":   course.Title,
				"certificateId": cert.ID,
			})

		return cert, nil
	}

	return nil, util.ErrCodeExhausted
}

// Verify is the public, unauthenticated lookup. Unknown and revoked codes
// are both reported as not found so revocation state does not leak. Hits
// are cached: the endpoint is open to the internet and read-heavy.
func (s *CertificateService) Verify(code string) (*model.PublicCertificateView, error) {
	ctx := context.Background()
	cacheKey := verifyCachePref + code

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var view model.PublicCertificateView
			if json.Unmarshal([]byte(cached), &view) == nil {
				return &view, nil
			}
		}
	}

	cert, err := s.certificates.FindValidByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCertificateNotFound
		}
		return nil, err
	}

	view := &model.PublicCertificateView{
		IssuedAt:         cert.IssuedAt,
		VerificationCode: cert.VerificationCode,
	}
	if cert.User != nil {
		view.UserName = cert.User.Name
	}
	if cert.Course != nil {
		view.CourseTitle = cert.Course.Title
		if cert.Course.Teacher != nil {
			view.TeacherName = cert.Course.Teacher.Name
		}
	}

	if s.rdb != nil {
		if b, err := json.Marshal(view); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, b, verifyCacheTTL).Err(); err != nil {
				logger.Log.Warn("verify cache write failed", zap.Error(err))
			}
		}
	}

	return view, nil
}

// ListForLearner returns the learner's certificates with course and
// teacher display data resolved.
func (s *CertificateService) ListForLearner(userID uint) ([]model.CertificateWithCourse, error) {
	certs, err := s.certificates.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	result := make([]model.CertificateWithCourse, 0, len(certs))
	for _, c := range certs {
		item := model.CertificateWithCourse{Certificate: c}
		if c.Course != nil {
			item.CourseInfo = model.CourseSummary{
				ID:          c.Course.ID,
				Title:       c.Course.Title,
				Description: c.Course.Description,
			}
			if c.Course.Teacher != nil {
				item.CourseInfo.TeacherName = c.Course.Teacher.Name
			}
		}
		item.Course = nil
		result = append(result, item)
	}
	return result, nil
}

// Revoke flips the certificate invalid and drops the cached verification
// entry so the public endpoint stops vouching for it immediately.
func (s *CertificateService) Revoke(id uint) error {
	cert, err := s.certificates.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCertificateNotFound
		}
		return err
	}

	if err := s.certificates.Revoke(cert.ID); err != nil {
		return err
	}

	if s.rdb != nil {
		if err := s.rdb.Del(context.Background(), verifyCachePref+cert.VerificationCode).Err(); err != nil {
			logger.Log.Warn("verify cache invalidation failed", zap.Error(err))
		}
	}

	return nil
}

// renderArtifact stores a certificate manifest and returns its URL. Real
// PDF rendering belongs to a rendering collaborator; the core only needs a
// stable opaque pointer, so a storage failure falls back to a synthesized
// one rather than failing issuance.
func (s *CertificateService) renderArtifact(user *model.User, course *model.Course, code string) string {
	name := fmt.Sprintf("certificates/cert_%s.json", uuid.New().String())

	manifest, err := json.Marshal(map[string]interface{}{
		"userName":         user.Name,
		"courseTitle":      course.Title,
		"verificationCode": code,
		"issuedAt":         time.Now().Format(time.RFC3339),
	})
	if err == nil && s.storage != nil {
		if url, err := s.storage.UploadBytes(context.Background(), name, manifest, manifestMimeType); err == nil {
			return url
		} else {
			logger.Log.Warn("certificate artifact upload failed", zap.Error(err))
		}
	}

	base := "https://certificates.learnhub.com"
	if s.cfg != nil && s.cfg.BaseURL != "" {
		base = s.cfg.BaseURL
	}
	return fmt.Sprintf("%s/%s", base, name)
}

func (s *CertificateService) generateVerificationCode() (string, error) {
	buf := make([]byte, codeSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}

	prefix := "LH"
	if s.cfg != nil && s.cfg.CodePrefix != "" {
		prefix = s.cfg.CodePrefix
	}

	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().Year(), string(buf)), nil
}
