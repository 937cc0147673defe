package model

import (
	"time"
)

// Certificate is a write-once proof of completion. At most one may ever
// exist per (user, course); the verification code is globally unique and
// publicly lookupable. Revocation flips IsValid, records are never deleted.
type Certificate struct {
	BaseModel
	UserID   uint    `gorm:"not null;uniqueIndex:idx_certificate_user_course" json:"userId"`
	User     *User   `gorm:"foreignKey:UserID" json:"-"`
	CourseID uint    `gorm:"not null;uniqueIndex:idx_certificate_user_course" json:"courseId"`
	Course   *Course `gorm:"foreignKey:CourseID" json:"-"`

	CertificateURL   string    `gorm:"size:255;not null" json:"certificateUrl"`
	VerificationCode string    `gorm:"size:40;uniqueIndex;not null" json:"verificationCode"`
	IssuedAt         time.Time `json:"issuedAt"`
	IsValid          bool      `gorm:"default:true" json:"isValid"`
}

func (Certificate) TableName() string {
	return "certificates"
}

// CertificateWithCourse resolves course/teacher display data for listings.
type CertificateWithCourse struct {
	Certificate
	CourseInfo CourseSummary `json:"course"`
}

// PublicCertificateView is what the unauthenticated verification endpoint
// returns. Internal identifiers are structurally excluded, not just
// omitted from serialization.
type PublicCertificateView struct {
	UserName         string    `json:"userName"`
	CourseTitle      string    `json:"courseTitle"`
	TeacherName      string    `json:"teacherName"`
	IssuedAt         time.Time `json:"issuedAt"`
	VerificationCode string    `json:"verificationCode"`
}
