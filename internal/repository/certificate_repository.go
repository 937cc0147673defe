package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type CertificateRepository struct {
	DB *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: db}
}

// Create inserts the certificate. Both the (user, course) pair and the
// verification code carry unique indexes; either violation surfaces as
// gorm.ErrDuplicatedKey and the caller decides which constraint fired.
func (r *CertificateRepository) Create(cert *model.Certificate) error {
	return normalizeDuplicate(r.DB.Create(cert).Error)
}

func (r *CertificateRepository) ExistsForUserAndCourse(userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Certificate{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *CertificateRepository) ListByUser(userID uint) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.DB.Where("user_id = ?", userID).
		Preload("Course").Preload("Course.Teacher").
		Order("issued_at DESC").
		Find(&certs).Error
	return certs, err
}

// FindValidByCode serves public verification. Revoked certificates are
// filtered here so unknown and revoked codes are indistinguishable to the
// caller.
func (r *CertificateRepository) FindValidByCode(code string) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.Where("verification_code = ? AND is_valid = ?", code, true).
		Preload("User").Preload("Course").Preload("Course.Teacher").
		First(&cert).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *CertificateRepository) FindByID(id uint) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.First(&cert, id).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

// Revoke flips isValid. The record itself is never deleted.
func (r *CertificateRepository) Revoke(id uint) error {
	return r.DB.Model(&model.Certificate{}).Where("id = ?", id).
		Update("is_valid", false).Error
}
