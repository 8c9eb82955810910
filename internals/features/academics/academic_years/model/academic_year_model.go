// file: internals/features/academics/academic_years/model/academic_year_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL academic_years — tahun ajaran (mis. "2025/2026")
// =========================================================

type AcademicYearModel struct {
	// PK
	AcademicYearID uuid.UUID `json:"academic_year_id" gorm:"column:academic_year_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// Label + periode
	AcademicYearName      string    `json:"academic_year_name" gorm:"column:academic_year_name;type:varchar(20);not null;uniqueIndex:uq_academic_year_name"`
	AcademicYearStartDate time.Time `json:"academic_year_start_date" gorm:"column:academic_year_start_date;type:date;not null"`
	AcademicYearEndDate   time.Time `json:"academic_year_end_date" gorm:"column:academic_year_end_date;type:date;not null"`

	AcademicYearIsAdmissionOpen bool `json:"academic_year_is_admission_open" gorm:"column:academic_year_is_admission_open;not null;default:false"`

	// Timestamps
	AcademicYearCreatedAt time.Time      `json:"academic_year_created_at" gorm:"column:academic_year_created_at;not null;default:now()"`
	AcademicYearUpdatedAt time.Time      `json:"academic_year_updated_at" gorm:"column:academic_year_updated_at;not null;default:now()"`
	AcademicYearDeletedAt gorm.DeletedAt `json:"-" gorm:"column:academic_year_deleted_at;index"`
}

func (AcademicYearModel) TableName() string { return "academic_years" }

func (m *AcademicYearModel) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.AcademicYearCreatedAt.IsZero() {
		m.AcademicYearCreatedAt = now
	}
	m.AcademicYearUpdatedAt = now
	return nil
}

func (m *AcademicYearModel) BeforeUpdate(tx *gorm.DB) error {
	m.AcademicYearUpdatedAt = time.Now()
	return nil
}
