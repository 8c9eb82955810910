// file: internals/features/academics/enrollments/service/enrollment_resolver.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/academics/enrollments/model"
)

var ErrEnrollmentNotFound = errors.New("enrollment tidak ditemukan untuk siswa/tahun ajaran")

// EnrollmentInfo: hasil lookup referensi siswa untuk modul keuangan.
type EnrollmentInfo struct {
	ClassID      uuid.UUID
	CategoryCode string
	OptedHeads   []string
}

// ResolveEnrollment mengembalikan kelas, kategori, dan pos opsional siswa pada
// satu tahun ajaran. Tahun ajaran selalu eksplisit, tidak ada "tahun berjalan".
func ResolveEnrollment(ctx context.Context, db *gorm.DB, studentID, academicYearID uuid.UUID) (EnrollmentInfo, error) {
	var m model.StudentEnrollmentModel
	err := db.WithContext(ctx).
		Where("enrollment_student_id = ? AND enrollment_academic_year_id = ? AND enrollment_status = ?",
			studentID, academicYearID, model.EnrollmentStatusActive).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EnrollmentInfo{}, ErrEnrollmentNotFound
		}
		return EnrollmentInfo{}, err
	}

	return EnrollmentInfo{
		ClassID:      m.EnrollmentClassID,
		CategoryCode: m.EnrollmentCategoryCode,
		OptedHeads:   append([]string(nil), m.EnrollmentOptedHeadCodes...),
	}, nil
}
