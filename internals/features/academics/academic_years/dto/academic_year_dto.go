package dto

import (
	"time"

	"github.com/google/uuid"

	model "sekolahku_backend/internals/features/academics/academic_years/model"
)

type AcademicYearCreateDTO struct {
	AcademicYearName            string    `json:"academic_year_name" validate:"required,max=20"`
	AcademicYearStartDate       time.Time `json:"academic_year_start_date" validate:"required"`
	AcademicYearEndDate         time.Time `json:"academic_year_end_date" validate:"required,gtfield=AcademicYearStartDate"`
	AcademicYearIsAdmissionOpen bool      `json:"academic_year_is_admission_open"`
}

type AcademicYearResponse struct {
	AcademicYearID              uuid.UUID `json:"academic_year_id"`
	AcademicYearName            string    `json:"academic_year_name"`
	AcademicYearStartDate       time.Time `json:"academic_year_start_date"`
	AcademicYearEndDate         time.Time `json:"academic_year_end_date"`
	AcademicYearIsAdmissionOpen bool      `json:"academic_year_is_admission_open"`
}

func ToAcademicYearModel(in AcademicYearCreateDTO) model.AcademicYearModel {
	return model.AcademicYearModel{
		AcademicYearName:            in.AcademicYearName,
		AcademicYearStartDate:       in.AcademicYearStartDate,
		AcademicYearEndDate:         in.AcademicYearEndDate,
		AcademicYearIsAdmissionOpen: in.AcademicYearIsAdmissionOpen,
	}
}

func ToAcademicYearResponse(m model.AcademicYearModel) AcademicYearResponse {
	return AcademicYearResponse{
		AcademicYearID:              m.AcademicYearID,
		AcademicYearName:            m.AcademicYearName,
		AcademicYearStartDate:       m.AcademicYearStartDate,
		AcademicYearEndDate:         m.AcademicYearEndDate,
		AcademicYearIsAdmissionOpen: m.AcademicYearIsAdmissionOpen,
	}
}
