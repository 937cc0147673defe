package model

import (
	"time"
)

// Enrollment records one learner's relationship to one course. The
// composite unique index is the authoritative guard against duplicate
// enrollments; application-level pre-checks are advisory only.
type Enrollment struct {
	BaseModel
	UserID   uint    `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"userId"`
	User     *User   `gorm:"foreignKey:UserID" json:"-"`
	CourseID uint    `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"courseId"`
	Course   *Course `gorm:"foreignKey:CourseID" json:"-"`

	EnrolledAt   time.Time  `json:"enrolledAt"`
	Progress     int        `gorm:"default:0" json:"progress"`
	Completed    bool       `gorm:"default:false" json:"completed"`
	CompletedAt  *time.Time `json:"completedAt"`
	LastAccessed time.Time  `json:"lastAccessed"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// EnrollmentWithCourse resolves course/teacher display data for listings.
type EnrollmentWithCourse struct {
	Enrollment
	CourseInfo CourseSummary `json:"course"`
}
