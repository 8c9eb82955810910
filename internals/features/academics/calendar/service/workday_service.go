// file: internals/features/academics/calendar/service/workday_service.go
package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/academics/calendar/model"
)

// Calendar menjawab satu pertanyaan: hari kerja berikutnya dari sebuah tanggal.
// Scheduler installment satu-satunya pemakai.
type Calendar interface {
	NextWorkingDay(d time.Time) time.Time
}

const dateKeyLayout = "2006-01-02"

// HolidayCalendar: kalender in-memory (weekend + daftar libur).
type HolidayCalendar struct {
	holidays map[string]bool
}

func NewHolidayCalendar(dates []time.Time) *HolidayCalendar {
	hs := make(map[string]bool, len(dates))
	for _, d := range dates {
		hs[d.Format(dateKeyLayout)] = true
	}
	return &HolidayCalendar{holidays: hs}
}

// NextWorkingDay menggeser maju selama weekend/libur. Tanggal yang sudah hari
// kerja dikembalikan apa adanya.
func (cal *HolidayCalendar) NextWorkingDay(d time.Time) time.Time {
	d = truncateToDate(d)
	for isWeekend(d) || cal.holidays[d.Format(dateKeyLayout)] {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func truncateToDate(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// LoadCalendar membaca libur dalam rentang [from, to] dari school_holidays.
func LoadCalendar(ctx context.Context, db *gorm.DB, from, to time.Time) (*HolidayCalendar, error) {
	var rows []model.HolidayModel
	if err := db.WithContext(ctx).
		Where("holiday_date BETWEEN ? AND ?", from, to).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(rows))
	for _, r := range rows {
		dates = append(dates, r.HolidayDate)
	}
	return NewHolidayCalendar(dates), nil
}
