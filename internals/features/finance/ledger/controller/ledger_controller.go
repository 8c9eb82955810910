package controller

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	service "sekolahku_backend/internals/features/finance/ledger/service"
	helper "sekolahku_backend/internals/helpers"
)

type LedgerHandler struct {
	DB *gorm.DB
}

func parseAsOf(c *fiber.Ctx) (time.Time, bool) {
	s := c.Query("as_of")
	if s == "" {
		return time.Now(), true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// GET /api/a/students/:student_id/ledger?academic_year_id=&as_of=
func (h *LedgerHandler) GetStudentLedger(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid student_id")
	}
	yearID, err := uuid.Parse(c.Query("academic_year_id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "academic_year_id is required")
	}
	asOf, ok := parseAsOf(c)
	if !ok {
		return helper.JsonError(c, http.StatusBadRequest, "as_of harus format YYYY-MM-DD")
	}

	ledger, err := service.GetLedger(c.UserContext(), h.DB, studentID, yearID, asOf)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", ledger)
}

// GET /api/a/ledger/overdue?academic_year_id=&class_id=&as_of= (paged)
func (h *LedgerHandler) ListOverdue(c *fiber.Ctx) error {
	yearID, err := uuid.Parse(c.Query("academic_year_id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "academic_year_id is required")
	}

	var classID *uuid.UUID
	if s := c.Query("class_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid class_id")
		}
		classID = &id
	}

	asOf, ok := parseAsOf(c)
	if !ok {
		return helper.JsonError(c, http.StatusBadRequest, "as_of harus format YYYY-MM-DD")
	}

	paging := helper.ResolvePaging(c, 20, 100)
	rows, total, err := service.ListOverdue(c.UserContext(), h.DB, yearID, classID, asOf, paging.Limit, paging.Offset)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "ok", rows, &p)
}
