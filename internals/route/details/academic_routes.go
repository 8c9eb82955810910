package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicYearRoute "sekolahku_backend/internals/features/academics/academic_years/route"
	calendarRoute "sekolahku_backend/internals/features/academics/calendar/route"
	enrollmentRoute "sekolahku_backend/internals/features/academics/enrollments/route"
)

// Master data akademik: tahun ajaran, kalender libur, enrollment.
func AcademicAdminRoutes(r fiber.Router, db *gorm.DB) {
	academicYearRoute.AcademicYearAdminRoutes(r, db)
	calendarRoute.HolidayAdminRoutes(r, db)
	enrollmentRoute.EnrollmentAdminRoutes(r, db)
}
