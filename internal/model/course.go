package model

type CourseLevel string

const (
	Beginner     CourseLevel = "Beginner"
	Intermediate CourseLevel = "Intermediate"
	Advanced     CourseLevel = "Advanced"
)

type Course struct {
	BaseModel
	Title       string      `gorm:"size:100;not null" json:"title"`
	Description string      `gorm:"size:1000;not null" json:"description"`
	Thumbnail   string      `gorm:"size:255" json:"thumbnail"`
	VideoURL    string      `gorm:"size:255" json:"videoUrl"`
	TeacherID   uint        `gorm:"not null;index" json:"teacherId"`
	Teacher     *User       `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Category    string      `gorm:"size:50;default:'General'" json:"category"`
	Level       CourseLevel `gorm:"size:20;default:'Beginner'" json:"level"`
	Duration    string      `gorm:"size:50;default:'1 hour'" json:"duration"`
	Price       float64     `gorm:"default:0" json:"price"` // informational only
	IsActive    bool        `gorm:"default:true" json:"isActive"`
	Rating      float64     `gorm:"default:0" json:"rating"`

	// Denormalized count of live enrollments. Written only by the
	// enrollment counter synchronizer, never by course CRUD.
	EnrolledStudents int64 `gorm:"default:0" json:"enrolledStudents"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseSummary is the display projection joined onto enrollments and
// certificates.
type CourseSummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	TeacherName string `json:"teacherName"`
}
