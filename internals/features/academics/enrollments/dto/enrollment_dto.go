package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	model "sekolahku_backend/internals/features/academics/enrollments/model"
)

type EnrollmentCreateDTO struct {
	EnrollmentStudentID      uuid.UUID `json:"enrollment_student_id" validate:"required"`
	EnrollmentAcademicYearID uuid.UUID `json:"enrollment_academic_year_id" validate:"required"`
	EnrollmentClassID        uuid.UUID `json:"enrollment_class_id" validate:"required"`
	EnrollmentCategoryCode   string    `json:"enrollment_category_code" validate:"omitempty,max=20"`
	EnrollmentOptedHeadCodes []string  `json:"enrollment_opted_head_codes" validate:"omitempty,dive,max=20"`
}

type EnrollmentResponse struct {
	EnrollmentID             uuid.UUID `json:"enrollment_id"`
	EnrollmentStudentID      uuid.UUID `json:"enrollment_student_id"`
	EnrollmentAcademicYearID uuid.UUID `json:"enrollment_academic_year_id"`
	EnrollmentClassID        uuid.UUID `json:"enrollment_class_id"`
	EnrollmentCategoryCode   string    `json:"enrollment_category_code"`
	EnrollmentOptedHeadCodes []string  `json:"enrollment_opted_head_codes"`
	EnrollmentStatus         string    `json:"enrollment_status"`
	EnrollmentCreatedAt      time.Time `json:"enrollment_created_at"`
}

func ToEnrollmentModel(in EnrollmentCreateDTO) model.StudentEnrollmentModel {
	cat := in.EnrollmentCategoryCode
	if cat == "" {
		cat = "general"
	}
	return model.StudentEnrollmentModel{
		EnrollmentStudentID:      in.EnrollmentStudentID,
		EnrollmentAcademicYearID: in.EnrollmentAcademicYearID,
		EnrollmentClassID:        in.EnrollmentClassID,
		EnrollmentCategoryCode:   cat,
		EnrollmentOptedHeadCodes: pq.StringArray(in.EnrollmentOptedHeadCodes),
		EnrollmentStatus:         model.EnrollmentStatusActive,
	}
}

func ToEnrollmentResponse(m model.StudentEnrollmentModel) EnrollmentResponse {
	return EnrollmentResponse{
		EnrollmentID:             m.EnrollmentID,
		EnrollmentStudentID:      m.EnrollmentStudentID,
		EnrollmentAcademicYearID: m.EnrollmentAcademicYearID,
		EnrollmentClassID:        m.EnrollmentClassID,
		EnrollmentCategoryCode:   m.EnrollmentCategoryCode,
		EnrollmentOptedHeadCodes: []string(m.EnrollmentOptedHeadCodes),
		EnrollmentStatus:         string(m.EnrollmentStatus),
		EnrollmentCreatedAt:      m.EnrollmentCreatedAt,
	}
}
