// file: internals/features/finance/payments/service/allocator_service.go
package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	installmentModel "sekolahku_backend/internals/features/finance/installments/model"
	model "sekolahku_backend/internals/features/finance/payments/model"
)

var (
	// ErrAlreadyAllocated: payment sudah pernah dialokasikan; ulangi = no-op error.
	ErrAlreadyAllocated = errors.New("payment sudah dialokasikan")
	// ErrAllocationConflict: dua alokasi bertabrakan dan retry pun gagal.
	ErrAllocationConflict = errors.New("alokasi bentrok dengan transaksi lain, coba lagi")
	// ErrPaymentNotFound dikembalikan untuk id yang tidak ada.
	ErrPaymentNotFound = errors.New("payment not found")
)

// CreditSource: dana yang bisa dipakai — payment lama dengan sisa belum
// teralokasi, atau payment baru itu sendiri.
type CreditSource struct {
	PaymentID    uuid.UUID
	AvailableIDR int64
	PaidAt       time.Time
}

// OutstandingInstallment: cicilan dengan sisa pokok > 0.
type OutstandingInstallment struct {
	InstallmentID  uuid.UUID
	FeeHeadID      uuid.UUID
	HeadPriority   int
	DueDate        time.Time
	OutstandingIDR int64
}

// AllocationLine: satu pecahan dana → satu cicilan. Selalu menunjuk payment
// sumber aslinya, jadi total alokasi per payment tidak pernah melebihi
// nominal payment itu.
type AllocationLine struct {
	PaymentID     uuid.UUID `json:"payment_id"`
	InstallmentID uuid.UUID `json:"installment_id"`
	AmountIDR     int64     `json:"amount_idr"`
}

// BuildAllocationPlan membagi dana ke cicilan: kredit lama dikonsumsi lebih
// dulu (paid_at tertua duluan), cicilan diisi urut jatuh tempo lalu prioritas
// pos. headHint membatasi alokasi ke satu pos saja. Murni — tanpa DB.
func BuildAllocationPlan(credits []CreditSource, installments []OutstandingInstallment, headHint *uuid.UUID) (lines []AllocationLine, leftoverIDR int64) {
	cs := make([]CreditSource, len(credits))
	copy(cs, credits)
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].PaidAt.Before(cs[j].PaidAt) })

	is := make([]OutstandingInstallment, 0, len(installments))
	for _, it := range installments {
		if headHint != nil && it.FeeHeadID != *headHint {
			continue
		}
		if it.OutstandingIDR <= 0 {
			continue
		}
		is = append(is, it)
	}
	sort.SliceStable(is, func(i, j int) bool {
		if !is[i].DueDate.Equal(is[j].DueDate) {
			return is[i].DueDate.Before(is[j].DueDate)
		}
		if is[i].HeadPriority != is[j].HeadPriority {
			return is[i].HeadPriority < is[j].HeadPriority
		}
		return is[i].InstallmentID.String() < is[j].InstallmentID.String()
	})

	ci := 0
	for ii := range is {
		need := is[ii].OutstandingIDR
		for need > 0 && ci < len(cs) {
			if cs[ci].AvailableIDR <= 0 {
				ci++
				continue
			}
			take := need
			if cs[ci].AvailableIDR < take {
				take = cs[ci].AvailableIDR
			}
			lines = append(lines, AllocationLine{
				PaymentID:     cs[ci].PaymentID,
				InstallmentID: is[ii].InstallmentID,
				AmountIDR:     take,
			})
			cs[ci].AvailableIDR -= take
			need -= take
		}
		if ci >= len(cs) {
			break
		}
	}

	for _, c := range cs {
		leftoverIDR += c.AvailableIDR
	}
	return lines, leftoverIDR
}

// ApplyDebits mengurangkan total adjustment negatif yang sudah dibukukan dari
// kredit, tertua dulu — dana yang sudah dikoreksi tidak boleh dibelanjakan
// lagi oleh alokasi berikutnya. Murni — tanpa DB.
func ApplyDebits(credits []CreditSource, debitIDR int64) []CreditSource {
	if debitIDR <= 0 {
		return credits
	}
	cs := make([]CreditSource, len(credits))
	copy(cs, credits)
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].PaidAt.Before(cs[j].PaidAt) })

	for i := range cs {
		if debitIDR == 0 {
			break
		}
		take := cs[i].AvailableIDR
		if take > debitIDR {
			take = debitIDR
		}
		cs[i].AvailableIDR -= take
		debitIDR -= take
	}
	return cs
}

// CheckNotAllocated: guard replay — payment yang sudah pernah dialokasikan
// ditolak dengan ErrAlreadyAllocated, tanpa menyentuh state.
func CheckNotAllocated(p *model.PaymentModel) error {
	if p.PaymentAllocatedAt != nil {
		return ErrAlreadyAllocated
	}
	return nil
}

// AllocateResult: ringkasan satu kali alokasi.
type AllocateResult struct {
	Lines       []AllocationLine `json:"lines"`
	LeftoverIDR int64            `json:"leftover_idr"` // sisa kredit, terpakai di alokasi berikutnya
}

// AllocatePayment mengalokasikan satu payment (plus sisa kredit lama) ke
// cicilan outstanding siswa. Serialisasi: advisory lock per siswa + FOR UPDATE;
// bentrok serialisasi di-retry sekali, lalu ErrAllocationConflict.
func AllocatePayment(ctx context.Context, db *gorm.DB, paymentID uuid.UUID) (*AllocateResult, error) {
	var res *AllocateResult
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		res, err = allocateOnce(ctx, db, paymentID)
		if err == nil || !isSerializationFailure(err) {
			return res, err
		}
	}
	return nil, ErrAllocationConflict
}

func allocateOnce(ctx context.Context, db *gorm.DB, paymentID uuid.UUID) (*AllocateResult, error) {
	res := &AllocateResult{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.PaymentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, "payment_id = ?", paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if err := CheckNotAllocated(&p); err != nil {
			return err
		}

		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtext(?))",
			"alloc:"+p.PaymentStudentID.String(),
		).Error; err != nil {
			return err
		}

		now := time.Now()

		// adjustment negatif tidak dialokasikan ke cicilan — hanya
		// mengoreksi total di ledger
		if p.PaymentAmountIDR <= 0 {
			if err := tx.Model(&model.PaymentModel{}).
				Where("payment_id = ?", p.PaymentID).
				Update("payment_allocated_at", now).Error; err != nil {
				return err
			}
			return nil
		}

		installments, err := loadOutstanding(tx, p.PaymentStudentID, p.PaymentAcademicYearID)
		if err != nil {
			return err
		}

		credits, err := loadCreditSources(tx, p.PaymentStudentID, p.PaymentAcademicYearID, p.PaymentID)
		if err != nil {
			return err
		}
		credits = append(credits, CreditSource{
			PaymentID:    p.PaymentID,
			AvailableIDR: p.PaymentAmountIDR,
			PaidAt:       p.PaymentPaidAt,
		})

		// adjustment negatif yang sudah dibukukan memotong kredit yang
		// tersedia — tanpa ini alokasi membelanjakan dana yang sudah
		// dikoreksi dan settled melebihi uang riil
		debit, err := loadAdjustmentDebits(tx, p.PaymentStudentID, p.PaymentAcademicYearID)
		if err != nil {
			return err
		}
		credits = ApplyDebits(credits, debit)

		lines, leftover := BuildAllocationPlan(credits, installments, p.PaymentFeeHeadID)

		if len(lines) > 0 {
			rows := make([]model.PaymentAllocationModel, 0, len(lines))
			settleDelta := make(map[uuid.UUID]int64, len(lines))
			for _, l := range lines {
				rows = append(rows, model.PaymentAllocationModel{
					AllocationPaymentID:     l.PaymentID,
					AllocationInstallmentID: l.InstallmentID,
					AllocationAmountIDR:     l.AmountIDR,
				})
				settleDelta[l.InstallmentID] += l.AmountIDR
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
			for instID, delta := range settleDelta {
				if err := tx.Model(&installmentModel.InstallmentModel{}).
					Where("installment_id = ?", instID).
					Update("installment_settled_idr", gorm.Expr("installment_settled_idr + ?", delta)).Error; err != nil {
					return err
				}
			}
		}

		if err := tx.Model(&model.PaymentModel{}).
			Where("payment_id = ?", p.PaymentID).
			Update("payment_allocated_at", now).Error; err != nil {
			return err
		}

		res.Lines = lines
		res.LeftoverIDR = leftover
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func loadOutstanding(tx *gorm.DB, studentID, academicYearID uuid.UUID) ([]OutstandingInstallment, error) {
	type row struct {
		InstallmentID uuid.UUID `gorm:"column:installment_id"`
		FeeHeadID     uuid.UUID `gorm:"column:installment_fee_head_id"`
		HeadPriority  int       `gorm:"column:fee_head_priority"`
		DueDate       time.Time `gorm:"column:installment_due_date"`
		AmountIDR     int64     `gorm:"column:installment_amount_idr"`
		SettledIDR    int64     `gorm:"column:installment_settled_idr"`
	}
	var rows []row
	if err := tx.
		Table("installments").
		Select(`installments.installment_id, installments.installment_fee_head_id,
			fee_heads.fee_head_priority, installments.installment_due_date,
			installments.installment_amount_idr, installments.installment_settled_idr`).
		Joins("JOIN fee_heads ON fee_heads.fee_head_id = installments.installment_fee_head_id").
		Where(`installments.installment_student_id = ?
			AND installments.installment_academic_year_id = ?
			AND installments.installment_settled_idr < installments.installment_amount_idr
			AND installments.installment_deleted_at IS NULL`,
			studentID, academicYearID).
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "installments"}}).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]OutstandingInstallment, 0, len(rows))
	for _, r := range rows {
		out = append(out, OutstandingInstallment{
			InstallmentID:  r.InstallmentID,
			FeeHeadID:      r.FeeHeadID,
			HeadPriority:   r.HeadPriority,
			DueDate:        r.DueDate,
			OutstandingIDR: r.AmountIDR - r.SettledIDR,
		})
	}
	return out, nil
}

// loadCreditSources: payment lama yang sudah lewat alokasi tapi masih
// menyisakan dana (nominal > total teralokasi).
func loadCreditSources(tx *gorm.DB, studentID, academicYearID, excludePaymentID uuid.UUID) ([]CreditSource, error) {
	type row struct {
		PaymentID    uuid.UUID `gorm:"column:payment_id"`
		AvailableIDR int64     `gorm:"column:available_idr"`
		PaidAt       time.Time `gorm:"column:payment_paid_at"`
	}
	var rows []row
	if err := tx.
		Table("payments").
		Select(`payments.payment_id, payments.payment_paid_at,
			payments.payment_amount_idr - COALESCE(SUM(payment_allocations.allocation_amount_idr), 0) AS available_idr`).
		Joins("LEFT JOIN payment_allocations ON payment_allocations.allocation_payment_id = payments.payment_id").
		Where(`payments.payment_student_id = ?
			AND payments.payment_academic_year_id = ?
			AND payments.payment_id <> ?
			AND payments.payment_allocated_at IS NOT NULL
			AND payments.payment_amount_idr > 0
			AND payments.payment_deleted_at IS NULL`,
			studentID, academicYearID, excludePaymentID).
		Group("payments.payment_id, payments.payment_paid_at, payments.payment_amount_idr").
		Having("payments.payment_amount_idr - COALESCE(SUM(payment_allocations.allocation_amount_idr), 0) > 0").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]CreditSource, 0, len(rows))
	for _, r := range rows {
		out = append(out, CreditSource{
			PaymentID:    r.PaymentID,
			AvailableIDR: r.AvailableIDR,
			PaidAt:       r.PaidAt,
		})
	}
	return out, nil
}

// loadAdjustmentDebits: total adjustment negatif yang sudah dibukukan —
// cermin dari komponen negatif di saldo kredit ledger.
func loadAdjustmentDebits(tx *gorm.DB, studentID, academicYearID uuid.UUID) (int64, error) {
	type row struct {
		DebitIDR int64 `gorm:"column:debit_idr"`
	}
	var r row
	if err := tx.
		Table("payments").
		Select("COALESCE(-SUM(payment_amount_idr), 0) AS debit_idr").
		Where(`payment_student_id = ?
			AND payment_academic_year_id = ?
			AND payment_amount_idr < 0
			AND payment_allocated_at IS NOT NULL
			AND payment_deleted_at IS NULL`,
			studentID, academicYearID).
		Scan(&r).Error; err != nil {
		return 0, err
	}
	return r.DebitIDR, nil
}

// 40001 = serialization_failure, 40P01 = deadlock_detected
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
