package seeds

import (
	"gorm.io/gorm"

	fee_heads "sekolahku_backend/internals/seeds/finance/fee_heads"
)

// RunAllSeeds memuat master data awal. Dipanggil manual lewat SEED_ON_BOOT.
func RunAllSeeds(db *gorm.DB) {
	fee_heads.SeedFeeHeadsFromJSON(db, "internals/seeds/finance/fee_heads/data_fee_heads.json")
}
