// file: internals/features/academics/enrollments/model/enrollment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// =========================================================
// MODEL student_enrollments — siswa terdaftar di kelas per
// tahun ajaran; jadi sumber kelas/kategori/pos opsional
// =========================================================

type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusWithdrawn EnrollmentStatus = "withdrawn"
)

type StudentEnrollmentModel struct {
	// PK
	EnrollmentID uuid.UUID `json:"enrollment_id" gorm:"column:enrollment_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// Siswa + periode (satu enrollment per siswa per tahun)
	EnrollmentStudentID      uuid.UUID `json:"enrollment_student_id" gorm:"column:enrollment_student_id;type:uuid;not null;index;uniqueIndex:uq_enrollment_student_year,priority:1"`
	EnrollmentAcademicYearID uuid.UUID `json:"enrollment_academic_year_id" gorm:"column:enrollment_academic_year_id;type:uuid;not null;uniqueIndex:uq_enrollment_student_year,priority:2"`

	// Penempatan
	EnrollmentClassID      uuid.UUID `json:"enrollment_class_id" gorm:"column:enrollment_class_id;type:uuid;not null;index"`
	EnrollmentCategoryCode string    `json:"enrollment_category_code" gorm:"column:enrollment_category_code;type:varchar(20);not null;default:'general'"`

	// Pos biaya opsional yang diikuti siswa (transport/hostel)
	EnrollmentOptedHeadCodes pq.StringArray `json:"enrollment_opted_head_codes" gorm:"column:enrollment_opted_head_codes;type:text[]"`

	EnrollmentStatus EnrollmentStatus `json:"enrollment_status" gorm:"column:enrollment_status;type:varchar(20);not null;default:'active';index"`

	// Timestamps
	EnrollmentCreatedAt time.Time      `json:"enrollment_created_at" gorm:"column:enrollment_created_at;not null;default:now()"`
	EnrollmentUpdatedAt time.Time      `json:"enrollment_updated_at" gorm:"column:enrollment_updated_at;not null;default:now()"`
	EnrollmentDeletedAt gorm.DeletedAt `json:"-" gorm:"column:enrollment_deleted_at;index"`
}

func (StudentEnrollmentModel) TableName() string { return "student_enrollments" }

func (m *StudentEnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.EnrollmentCreatedAt.IsZero() {
		m.EnrollmentCreatedAt = now
	}
	m.EnrollmentUpdatedAt = now
	return nil
}

func (m *StudentEnrollmentModel) BeforeUpdate(tx *gorm.DB) error {
	m.EnrollmentUpdatedAt = time.Now()
	return nil
}
