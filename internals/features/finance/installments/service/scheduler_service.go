// file: internals/features/finance/installments/service/scheduler_service.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	academicYearModel "sekolahku_backend/internals/features/academics/academic_years/model"
	calendarService "sekolahku_backend/internals/features/academics/calendar/service"
	concessionService "sekolahku_backend/internals/features/finance/concessions/service"
	model "sekolahku_backend/internals/features/finance/installments/model"
)

// Jumlah cicilan per plan.
var planCounts = map[string]int{
	"lump_sum":    1,
	"half_yearly": 2,
	"term":        3,
	"quarterly":   4,
	"monthly":     12,
}

// PlanCount: jumlah cicilan sebuah plan; plan tak dikenal jatuh ke term.
func PlanCount(plan string) int {
	if n, ok := planCounts[plan]; ok {
		return n
	}
	log.Printf("[WARN] plan tidak dikenal %q, fallback ke term", plan)
	return planCounts["term"]
}

// SplitAmount membagi total jadi n bagian bulat; sisa pembagian menempel
// di cicilan terakhir supaya jumlah selalu tepat sama dengan total.
func SplitAmount(total int64, n int) []int64 {
	if n <= 0 {
		n = 1
	}
	base := total / int64(n)
	out := make([]int64, n)
	for i := range out {
		out[i] = base
	}
	out[n-1] += total - base*int64(n)
	return out
}

// BuildDueDates: n tanggal jatuh tempo tersebar merata sepanjang tahun ajaran
// (12/n bulan antar cicilan), masing-masing digeser ke hari kerja berikutnya.
func BuildDueDates(yearStart time.Time, n int, cal calendarService.Calendar) []time.Time {
	if n <= 0 {
		n = 1
	}
	step := 12 / n
	if step < 1 {
		step = 1
	}
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		d := yearStart.AddDate(0, i*step, 0)
		out = append(out, cal.NextWorkingDay(d))
	}
	return out
}

// PlannedInstallment: satu cicilan hasil perencanaan, belum persisted.
type PlannedInstallment struct {
	FeeHeadID uuid.UUID `json:"fee_head_id"`
	HeadCode  string    `json:"fee_head_code"`
	Seq       int       `json:"seq"`
	AmountIDR int64     `json:"amount_idr"`
	DueDate   time.Time `json:"due_date"`
}

// PlanInstallments memecah setiap pos bersih (setelah konsesi) jadi cicilan
// sesuai plan pos tersebut. Pos dengan net 0 tetap dapat satu cicilan 0
// supaya ledger tetap memperlihatkan posnya. Murni — tanpa DB.
func PlanInstallments(heads []concessionService.DiscountedHead, plans map[uuid.UUID]string, yearStart time.Time, cal calendarService.Calendar) []PlannedInstallment {
	var out []PlannedInstallment
	for _, h := range heads {
		n := PlanCount(plans[h.HeadID])
		if h.NetAmountIDR == 0 {
			n = 1
		}
		parts := SplitAmount(h.NetAmountIDR, n)
		dues := BuildDueDates(yearStart, n, cal)
		for i := 0; i < n; i++ {
			out = append(out, PlannedInstallment{
				FeeHeadID: h.HeadID,
				HeadCode:  h.HeadCode,
				Seq:       i + 1,
				AmountIDR: parts[i],
				DueDate:   dues[i],
			})
		}
	}
	return out
}

// GenerateResult: ringkasan hasil satu kali generate.
type GenerateResult struct {
	Created      int `json:"created"`
	SkippedHeads int `json:"skipped_heads"` // pos yang sudah punya installment
}

// GenerateInstallments membuat cicilan untuk (siswa, tahun). Idempoten:
// pos yang sudah punya installment dilewati utuh, tidak di-regenerate
// sebagian. Serialisasi via pg_advisory_xact_lock per (siswa, tahun).
func GenerateInstallments(ctx context.Context, db *gorm.DB, studentID, academicYearID uuid.UUID) (*GenerateResult, error) {
	var year academicYearModel.AcademicYearModel
	if err := db.WithContext(ctx).
		First(&year, "academic_year_id = ?", academicYearID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("academic year not found")
		}
		return nil, err
	}

	cal, err := calendarService.LoadCalendar(ctx, db, year.AcademicYearStartDate, year.AcademicYearEndDate.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	heads, err := concessionService.ResolveNetSchedule(ctx, db, studentID, academicYearID, year.AcademicYearStartDate)
	if err != nil {
		return nil, err
	}

	res := &GenerateResult{}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtext(?))",
			"installments:"+studentID.String()+":"+academicYearID.String(),
		).Error; err != nil {
			return err
		}

		// pos yang sudah punya cicilan → skip (idempoten)
		var existing []uuid.UUID
		if err := tx.Model(&model.InstallmentModel{}).
			Where("installment_student_id = ? AND installment_academic_year_id = ?", studentID, academicYearID).
			Distinct().
			Pluck("installment_fee_head_id", &existing).Error; err != nil {
			return err
		}
		done := make(map[uuid.UUID]bool, len(existing))
		for _, id := range existing {
			done[id] = true
		}

		var fresh []concessionService.DiscountedHead
		for _, h := range heads {
			if done[h.HeadID] {
				res.SkippedHeads++
				continue
			}
			fresh = append(fresh, h)
		}
		if len(fresh) == 0 {
			return nil
		}

		plans, err := loadPlansForStudent(ctx, tx, studentID, academicYearID)
		if err != nil {
			return err
		}

		planned := PlanInstallments(fresh, plans, year.AcademicYearStartDate, cal)
		rows := make([]model.InstallmentModel, 0, len(planned))
		for _, p := range planned {
			rows = append(rows, model.InstallmentModel{
				InstallmentStudentID:      studentID,
				InstallmentAcademicYearID: academicYearID,
				InstallmentFeeHeadID:      p.FeeHeadID,
				InstallmentSeq:            p.Seq,
				InstallmentAmountIDR:      p.AmountIDR,
				InstallmentDueDate:        p.DueDate,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		res.Created = len(rows)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func loadPlansForStudent(ctx context.Context, tx *gorm.DB, studentID, academicYearID uuid.UUID) (map[uuid.UUID]string, error) {
	type row struct {
		HeadID uuid.UUID `gorm:"column:fee_structure_fee_head_id"`
		Plan   string    `gorm:"column:fee_structure_default_plan"`
	}
	var rows []row
	if err := tx.WithContext(ctx).
		Table("fee_structures").
		Select("fee_structures.fee_structure_fee_head_id, fee_structures.fee_structure_default_plan").
		Joins(`JOIN student_enrollments ON student_enrollments.enrollment_class_id = fee_structures.fee_structure_class_id
			AND student_enrollments.enrollment_academic_year_id = fee_structures.fee_structure_academic_year_id`).
		Where(`student_enrollments.enrollment_student_id = ?
			AND fee_structures.fee_structure_academic_year_id = ?
			AND fee_structures.fee_structure_is_active
			AND fee_structures.fee_structure_deleted_at IS NULL
			AND student_enrollments.enrollment_deleted_at IS NULL`,
			studentID, academicYearID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]string, len(rows))
	for _, r := range rows {
		out[r.HeadID] = r.Plan
	}
	return out, nil
}
