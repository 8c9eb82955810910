package constants

// Tipe pos biaya (fee head) yang dikenal sistem.
const (
	FeeHeadAdmission   = "admission"
	FeeHeadTuition     = "tuition"
	FeeHeadExam        = "exam"
	FeeHeadTransport   = "transport"
	FeeHeadHostel      = "hostel"
	FeeHeadLibrary     = "library"
	FeeHeadLab         = "lab"
	FeeHeadSports      = "sports"
	FeeHeadComputer    = "computer"
	FeeHeadAnnual      = "annual"
	FeeHeadDevelopment = "development"
	FeeHeadMisc        = "misc"
)

// Pos opsional: hanya ditagihkan ke siswa yang opt-in lewat enrollment.
var OptionalFeeHeads = map[string]bool{
	FeeHeadTransport: true,
	FeeHeadHostel:    true,
}

// Prioritas default urutan tagih: tuition paling depan, pos wajib lain menyusul,
// pos opsional paling belakang. Dipakai sebagai nilai awal fee_head_priority dan
// tie-break alokasi pembayaran.
var DefaultHeadPriority = map[string]int{
	FeeHeadTuition:     10,
	FeeHeadAdmission:   20,
	FeeHeadExam:        30,
	FeeHeadAnnual:      40,
	FeeHeadDevelopment: 50,
	FeeHeadLibrary:     60,
	FeeHeadLab:         70,
	FeeHeadComputer:    80,
	FeeHeadSports:      90,
	FeeHeadMisc:        100,
	FeeHeadTransport:   110,
	FeeHeadHostel:      120,
}

// HeadPriority mengembalikan prioritas default sebuah tipe pos; tipe tak dikenal
// diletakkan paling belakang.
func HeadPriority(headType string) int {
	if p, ok := DefaultHeadPriority[headType]; ok {
		return p
	}
	return 999
}
