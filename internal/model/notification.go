package model

type NotificationType string

const (
	NotifyCourseEnrolled    NotificationType = "course_enrolled"
	NotifyCourseCompleted   NotificationType = "course_completed"
	NotifyCertificateIssued NotificationType = "certificate_issued"
)

type Notification struct {
	BaseModel
	UserID  uint             `gorm:"not null;index" json:"userId"`
	Type    NotificationType `gorm:"size:40;not null" json:"type"`
	Title   string           `gorm:"size:100;not null" json:"title"`
	Message string           `gorm:"size:500" json:"message"`
	Data    string           `gorm:"type:text" json:"data,omitempty"` // JSON payload
	IsRead  bool             `gorm:"default:false" json:"isRead"`
}

func (Notification) TableName() string {
	return "notifications"
}
