package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/finance/payments/dto"
	model "sekolahku_backend/internals/features/finance/payments/model"
	service "sekolahku_backend/internals/features/finance/payments/service"
	helper "sekolahku_backend/internals/helpers"
)

type PaymentHandler struct {
	DB *gorm.DB
}

// newReceiptNo: "RC-20250828-1A2B3C4D" — tanggal + fragmen uuid.
func newReceiptNo(paidAt time.Time) string {
	frag := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("RC-%s-%s", paidAt.Format("20060102"), frag)
}

// POST /api/a/payments
// Idempoten via payment_idempotency_key: replay mengembalikan payment yang
// sama dengan 200, bukan membuat baris kedua.
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.PaymentCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	kind := in.PaymentKind
	if kind == "" {
		kind = model.PaymentKindPayment
	}
	// nominal negatif/nol hanya untuk adjustment
	if kind == model.PaymentKindPayment && in.PaymentAmountIDR <= 0 {
		return helper.JsonError(c, http.StatusBadRequest, "payment_amount_idr harus > 0 untuk kind=payment")
	}
	if kind == model.PaymentKindAdjustment && in.PaymentAmountIDR == 0 {
		return helper.JsonError(c, http.StatusBadRequest, "adjustment dengan nominal 0 tidak bermakna")
	}

	ctx := c.UserContext()

	// replay check sebelum insert
	if in.PaymentIdempotencyKey != nil && *in.PaymentIdempotencyKey != "" {
		var existing model.PaymentModel
		err := h.DB.WithContext(ctx).
			First(&existing, "payment_idempotency_key = ?", *in.PaymentIdempotencyKey).Error
		switch {
		case err == nil:
			return helper.JsonOK(c, "payment sudah tercatat (replay)", dto.ToPaymentResponse(existing))
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
	}

	paidAt := time.Now()
	if in.PaymentPaidAt != nil {
		paidAt = *in.PaymentPaidAt
	}

	var meta datatypes.JSON
	if len(in.PaymentMeta) > 0 {
		b, err := sonic.Marshal(in.PaymentMeta)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid payment_meta")
		}
		meta = datatypes.JSON(b)
	}

	m := model.PaymentModel{
		PaymentStudentID:      in.PaymentStudentID,
		PaymentAcademicYearID: in.PaymentAcademicYearID,
		PaymentReceiptNo:      newReceiptNo(paidAt),
		PaymentKind:           kind,
		PaymentMode:           in.PaymentMode,
		PaymentAmountIDR:      in.PaymentAmountIDR,
		PaymentFeeHeadID:      in.PaymentFeeHeadID,
		PaymentIdempotencyKey: in.PaymentIdempotencyKey,
		PaymentMeta:           meta,
		PaymentPaidAt:         paidAt,
	}
	if err := h.DB.WithContext(ctx).Create(&m).Error; err != nil {
		// balapan dua request dengan key sama: yang kalah baca ulang baris pemenang
		if in.PaymentIdempotencyKey != nil && strings.Contains(err.Error(), "uq_payment_idem_key") {
			var existing model.PaymentModel
			if err2 := h.DB.WithContext(ctx).
				First(&existing, "payment_idempotency_key = ?", *in.PaymentIdempotencyKey).Error; err2 == nil {
				return helper.JsonOK(c, "payment sudah tercatat (replay)", dto.ToPaymentResponse(existing))
			}
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "payment recorded", dto.ToPaymentResponse(m))
}

// POST /api/a/payments/:id/allocate
func (h *PaymentHandler) Allocate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	res, err := service.AllocatePayment(c.UserContext(), h.DB, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			return helper.JsonError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAlreadyAllocated):
			return helper.JsonError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrAllocationConflict):
			return helper.JsonError(c, http.StatusConflict, err.Error())
		default:
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
	}
	return helper.JsonOK(c, "payment allocated", res)
}

// GET /api/a/payments?student_id=&academic_year_id= (paged)
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.UserContext()).Model(&model.PaymentModel{})
	if s := c.Query("student_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid student_id")
		}
		q = q.Where("payment_student_id = ?", id)
	}
	if s := c.Query("academic_year_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid academic_year_id")
		}
		q = q.Where("payment_academic_year_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var rows []model.PaymentModel
	if err := q.Order("payment_paid_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]dto.PaymentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToPaymentResponse(r))
	}
	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "ok", out, &p)
}

// GET /api/a/payments/:id
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	var m model.PaymentModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "payment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "payment not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToPaymentResponse(m))
}
