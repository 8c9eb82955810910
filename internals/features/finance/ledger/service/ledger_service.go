// file: internals/features/finance/ledger/service/ledger_service.go
package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	penaltyService "sekolahku_backend/internals/features/finance/penalties/service"
)

// InstallmentRow: satu cicilan + atribut pos, bahan baku agregasi.
type InstallmentRow struct {
	HeadID     uuid.UUID `gorm:"column:installment_fee_head_id"`
	HeadCode   string    `gorm:"column:fee_head_code"`
	HeadType   string    `gorm:"column:fee_head_type"`
	Priority   int       `gorm:"column:fee_head_priority"`
	Seq        int       `gorm:"column:installment_seq"`
	AmountIDR  int64     `gorm:"column:installment_amount_idr"`
	SettledIDR int64     `gorm:"column:installment_settled_idr"`
	DueDate    time.Time `gorm:"column:installment_due_date"`
}

// LedgerLine: rekap satu pos.
type LedgerLine struct {
	FeeHeadID      uuid.UUID `json:"fee_head_id"`
	HeadCode       string    `json:"fee_head_code"`
	HeadType       string    `json:"fee_head_type"`
	DueIDR         int64     `json:"due_idr"`
	PaidIDR        int64     `json:"paid_idr"`
	OutstandingIDR int64     `json:"outstanding_idr"`
	PenaltyIDR     int64     `json:"penalty_idr"`
}

// StudentLedger: posisi keuangan satu siswa satu tahun ajaran.
type StudentLedger struct {
	StudentID           uuid.UUID    `json:"student_id"`
	AcademicYearID      uuid.UUID    `json:"academic_year_id"`
	AsOf                time.Time    `json:"as_of"`
	Lines               []LedgerLine `json:"lines"`
	TotalDueIDR         int64        `json:"total_due_idr"`
	TotalPaidIDR        int64        `json:"total_paid_idr"`
	TotalOutstandingIDR int64        `json:"total_outstanding_idr"`
	TotalPenaltyIDR     int64        `json:"total_penalty_idr"`
	CreditIDR           int64        `json:"credit_idr"` // dana belum teralokasi, otomatis terpakai di pembayaran berikutnya
}

// BuildLedgerLines merekap cicilan per pos + denda berjalan per cicilan.
// Murni — tanpa DB.
func BuildLedgerLines(rows []InstallmentRow, policies map[uuid.UUID]penaltyService.PolicyInput, asOf time.Time) []LedgerLine {
	type agg struct {
		line     LedgerLine
		priority int
	}
	byHead := make(map[uuid.UUID]*agg)
	for _, r := range rows {
		a, ok := byHead[r.HeadID]
		if !ok {
			a = &agg{
				line: LedgerLine{
					FeeHeadID: r.HeadID,
					HeadCode:  r.HeadCode,
					HeadType:  r.HeadType,
				},
				priority: r.Priority,
			}
			byHead[r.HeadID] = a
		}
		outstanding := r.AmountIDR - r.SettledIDR
		a.line.DueIDR += r.AmountIDR
		a.line.PaidIDR += r.SettledIDR
		a.line.OutstandingIDR += outstanding
		if outstanding > 0 {
			a.line.PenaltyIDR += penaltyService.AccrueForHead(policies, r.HeadID, r.HeadCode, outstanding, r.DueDate, asOf)
		}
	}

	out := make([]LedgerLine, 0, len(byHead))
	prio := make(map[uuid.UUID]int, len(byHead))
	for _, a := range byHead {
		out = append(out, a.line)
		prio[a.line.FeeHeadID] = a.priority
	}
	sort.SliceStable(out, func(i, j int) bool {
		if prio[out[i].FeeHeadID] != prio[out[j].FeeHeadID] {
			return prio[out[i].FeeHeadID] < prio[out[j].FeeHeadID]
		}
		return out[i].HeadCode < out[j].HeadCode
	})
	return out
}

// GetLedger menyusun ledger siswa: cicilan + denda berjalan + sisa kredit.
func GetLedger(ctx context.Context, db *gorm.DB, studentID, academicYearID uuid.UUID, asOf time.Time) (*StudentLedger, error) {
	var rows []InstallmentRow
	if err := db.WithContext(ctx).
		Table("installments").
		Select(`installments.installment_fee_head_id, fee_heads.fee_head_code,
			fee_heads.fee_head_type, fee_heads.fee_head_priority,
			installments.installment_seq, installments.installment_amount_idr,
			installments.installment_settled_idr, installments.installment_due_date`).
		Joins("JOIN fee_heads ON fee_heads.fee_head_id = installments.installment_fee_head_id").
		Where(`installments.installment_student_id = ?
			AND installments.installment_academic_year_id = ?
			AND installments.installment_deleted_at IS NULL`,
			studentID, academicYearID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	policies, err := penaltyService.LoadPolicies(ctx, db)
	if err != nil {
		return nil, err
	}

	credit, err := loadCreditBalance(ctx, db, studentID, academicYearID)
	if err != nil {
		return nil, err
	}

	ledger := &StudentLedger{
		StudentID:      studentID,
		AcademicYearID: academicYearID,
		AsOf:           asOf,
		Lines:          BuildLedgerLines(rows, policies, asOf),
		CreditIDR:      credit,
	}
	for _, l := range ledger.Lines {
		ledger.TotalDueIDR += l.DueIDR
		ledger.TotalPaidIDR += l.PaidIDR
		ledger.TotalOutstandingIDR += l.OutstandingIDR
		ledger.TotalPenaltyIDR += l.PenaltyIDR
	}
	return ledger, nil
}

// loadCreditBalance: total dana masuk (termasuk adjustment) dikurangi total
// teralokasi — sisa positif berarti kredit yang akan terpakai berikutnya.
func loadCreditBalance(ctx context.Context, db *gorm.DB, studentID, academicYearID uuid.UUID) (int64, error) {
	type row struct {
		CreditIDR int64 `gorm:"column:credit_idr"`
	}
	var r row
	if err := db.WithContext(ctx).
		Table("payments").
		Select(`COALESCE(SUM(payments.payment_amount_idr), 0) - COALESCE((
			SELECT SUM(payment_allocations.allocation_amount_idr)
			FROM payment_allocations
			JOIN payments p2 ON p2.payment_id = payment_allocations.allocation_payment_id
			WHERE p2.payment_student_id = ?
			  AND p2.payment_academic_year_id = ?
			  AND p2.payment_deleted_at IS NULL
		), 0) AS credit_idr`, studentID, academicYearID).
		Where(`payments.payment_student_id = ?
			AND payments.payment_academic_year_id = ?
			AND payments.payment_allocated_at IS NOT NULL
			AND payments.payment_deleted_at IS NULL`,
			studentID, academicYearID).
		Scan(&r).Error; err != nil {
		return 0, err
	}
	if r.CreditIDR < 0 {
		return 0, nil
	}
	return r.CreditIDR, nil
}

// OverdueInstallmentRow: satu cicilan telat + identitas siswa/kelasnya.
type OverdueInstallmentRow struct {
	StudentID  uuid.UUID `gorm:"column:installment_student_id"`
	ClassID    uuid.UUID `gorm:"column:enrollment_class_id"`
	HeadID     uuid.UUID `gorm:"column:installment_fee_head_id"`
	HeadCode   string    `gorm:"column:fee_head_code"`
	AmountIDR  int64     `gorm:"column:installment_amount_idr"`
	SettledIDR int64     `gorm:"column:installment_settled_idr"`
	DueDate    time.Time `gorm:"column:installment_due_date"`
}

// OverdueStudent: satu siswa dengan tunggakan pada asOf, denda ikut dihitung.
type OverdueStudent struct {
	StudentID     uuid.UUID `json:"student_id"`
	ClassID       uuid.UUID `json:"class_id"`
	OverdueCount  int       `json:"overdue_count"`
	OverdueIDR    int64     `json:"overdue_idr"`
	PenaltyIDR    int64     `json:"penalty_idr"`
	OldestDueDate time.Time `json:"oldest_due_date"`
}

// BuildOverdueSummaries merekap cicilan telat per siswa, denda dihitung per
// cicilan lalu dijumlah. Urut tunggakan terbesar. Murni — tanpa DB.
func BuildOverdueSummaries(rows []OverdueInstallmentRow, policies map[uuid.UUID]penaltyService.PolicyInput, asOf time.Time) []OverdueStudent {
	byStudent := make(map[uuid.UUID]*OverdueStudent)
	for _, r := range rows {
		outstanding := r.AmountIDR - r.SettledIDR
		if outstanding <= 0 {
			continue
		}
		s, ok := byStudent[r.StudentID]
		if !ok {
			s = &OverdueStudent{StudentID: r.StudentID, ClassID: r.ClassID, OldestDueDate: r.DueDate}
			byStudent[r.StudentID] = s
		}
		s.OverdueCount++
		s.OverdueIDR += outstanding
		s.PenaltyIDR += penaltyService.AccrueForHead(policies, r.HeadID, r.HeadCode, outstanding, r.DueDate, asOf)
		if r.DueDate.Before(s.OldestDueDate) {
			s.OldestDueDate = r.DueDate
		}
	}

	out := make([]OverdueStudent, 0, len(byStudent))
	for _, s := range byStudent {
		out = append(out, *s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OverdueIDR != out[j].OverdueIDR {
			return out[i].OverdueIDR > out[j].OverdueIDR
		}
		return out[i].StudentID.String() < out[j].StudentID.String()
	})
	return out
}

// ListOverdue: siswa menunggak per kelas (atau seluruh tahun ajaran).
// Denda direkap in-memory karena tidak pernah dipersist.
func ListOverdue(ctx context.Context, db *gorm.DB, academicYearID uuid.UUID, classID *uuid.UUID, asOf time.Time, limit, offset int) ([]OverdueStudent, int64, error) {
	q := db.WithContext(ctx).
		Table("installments").
		Select(`installments.installment_student_id, student_enrollments.enrollment_class_id,
			installments.installment_fee_head_id, fee_heads.fee_head_code,
			installments.installment_amount_idr, installments.installment_settled_idr,
			installments.installment_due_date`).
		Joins(`JOIN student_enrollments ON student_enrollments.enrollment_student_id = installments.installment_student_id
			AND student_enrollments.enrollment_academic_year_id = installments.installment_academic_year_id`).
		Joins("JOIN fee_heads ON fee_heads.fee_head_id = installments.installment_fee_head_id").
		Where(`installments.installment_academic_year_id = ?
			AND installments.installment_due_date < ?
			AND installments.installment_settled_idr < installments.installment_amount_idr
			AND installments.installment_deleted_at IS NULL
			AND student_enrollments.enrollment_status = 'active'
			AND student_enrollments.enrollment_deleted_at IS NULL`,
			academicYearID, asOf)
	if classID != nil {
		q = q.Where("student_enrollments.enrollment_class_id = ?", *classID)
	}

	var rows []OverdueInstallmentRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	policies, err := penaltyService.LoadPolicies(ctx, db)
	if err != nil {
		return nil, 0, err
	}

	all := BuildOverdueSummaries(rows, policies, asOf)
	total := int64(len(all))
	if offset >= len(all) {
		return []OverdueStudent{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}
