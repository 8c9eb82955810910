package fee_heads

import (
	"log"
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "sekolahku_backend/internals/features/finance/fee_structures/model"
)

type feeHeadSeed struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Priority    int    `json:"priority"`
	IsMandatory bool   `json:"is_mandatory"`
}

// SeedFeeHeadsFromJSON memuat pos biaya standar. Idempoten: kode yang sudah
// ada dilewati, tidak ditimpa.
func SeedFeeHeadsFromJSON(db *gorm.DB, path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[SEED] gagal baca %s: %v", path, err)
		return
	}

	var seeds []feeHeadSeed
	if err := sonic.Unmarshal(raw, &seeds); err != nil {
		log.Printf("[SEED] gagal parse %s: %v", path, err)
		return
	}

	rows := make([]model.FeeHeadModel, 0, len(seeds))
	for _, s := range seeds {
		rows = append(rows, model.FeeHeadModel{
			FeeHeadCode:        s.Code,
			FeeHeadName:        s.Name,
			FeeHeadType:        s.Type,
			FeeHeadPriority:    s.Priority,
			FeeHeadIsMandatory: s.IsMandatory,
			FeeHeadIsActive:    true,
		})
	}
	if len(rows) == 0 {
		return
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "fee_head_code"}},
		DoNothing: true,
	}).Create(&rows).Error; err != nil {
		log.Printf("[SEED] gagal insert fee heads: %v", err)
		return
	}
	log.Printf("[SEED] fee heads dimuat (%d kandidat)", len(rows))
}
