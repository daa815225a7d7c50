package domain

// CREATE TABLE riwayat_makan (
//     id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     tanggal      TEXT,
//     waktu        TEXT,
//     nama_warung  TEXT,
//     menu         TEXT,
//     kategori     TEXT,
//     harga        TEXT,
//     metode       TEXT,
//     kepuasan     TEXT,
//     created_at   TIMESTAMPTZ DEFAULT NOW()
// );

// MealHistory is one raw meal transaction as stored in the operational
// database. Everything is text on purpose: the export dumps the table as-is
// and all typing happens at the silver boundary.
type MealHistory struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Date         string `gorm:"column:tanggal;type:text"`
	Time         string `gorm:"column:waktu;type:text"`
	Venue        string `gorm:"column:nama_warung;type:text"`
	Menu         string `gorm:"column:menu;type:text"`
	Category     string `gorm:"column:kategori;type:text"`
	Price        string `gorm:"column:harga;type:text"`
	Method       string `gorm:"column:metode;type:text"`
	Satisfaction string `gorm:"column:kepuasan;type:text"`
}

func (MealHistory) TableName() string {
	return "riwayat_makan"
}

// CleanedTransaction is one typed, validated row of the silver transaction
// snapshot. Price and satisfaction survived integer coercion, time is a bare
// HH:MM:SS, and satisfaction is binary.
type CleanedTransaction struct {
	Date         string `json:"date" validate:"required"`
	Time         string `json:"time" validate:"required"`
	Venue        string `json:"venue"`
	Menu         string `json:"menu"`
	Category     string `json:"category"`
	Price        int    `json:"price" validate:"gte=0"`
	Method       string `json:"method"`
	Satisfaction int    `json:"satisfaction" validate:"gte=0,lte=1"`
}

// TransactionSnapshot is the silver artifact written once per cleaner run,
// derived from exactly one bronze object.
type TransactionSnapshot struct {
	SourceBronze string               `json:"source_bronze"`
	TotalRaw     int                  `json:"total_raw"`
	TotalCleaned int                  `json:"total_cleaned"`
	Data         []CleanedTransaction `json:"data"`
}
