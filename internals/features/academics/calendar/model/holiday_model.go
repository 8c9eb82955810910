// file: internals/features/academics/calendar/model/holiday_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL school_holidays — hari libur sekolah (non-weekend)
// =========================================================

type HolidayModel struct {
	HolidayID uuid.UUID `json:"holiday_id" gorm:"column:holiday_id;type:uuid;default:gen_random_uuid();primaryKey"`

	HolidayDate time.Time `json:"holiday_date" gorm:"column:holiday_date;type:date;not null;uniqueIndex:uq_holiday_date"`
	HolidayName string    `json:"holiday_name" gorm:"column:holiday_name;type:varchar(100);not null"`

	HolidayCreatedAt time.Time      `json:"holiday_created_at" gorm:"column:holiday_created_at;not null;default:now()"`
	HolidayDeletedAt gorm.DeletedAt `json:"-" gorm:"column:holiday_deleted_at;index"`
}

func (HolidayModel) TableName() string { return "school_holidays" }
