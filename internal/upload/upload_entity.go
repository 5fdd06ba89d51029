package upload

import "time"

// Status file upload. processing adalah status awal; hasil akhirnya salah
// satu dari tiga lainnya.
const (
	StatusProcessing         = "processing"
	StatusProcessed          = "processed"
	StatusPartiallyProcessed = "partially_processed"
	StatusFailed             = "failed"
)

// UploadedFile mencatat riwayat setiap file yang pernah diunggah beserta
// hasil pemrosesannya
type UploadedFile struct {
	ID            string `gorm:"type:uuid;primaryKey"`
	FileName      string `gorm:"type:varchar(255);not null"`
	Status        string `gorm:"type:varchar(30);not null;default:processing"`
	TotalRows     int    `gorm:"not null;default:0"`
	InsertedRows  int    `gorm:"not null;default:0"`
	FailedRows    int    `gorm:"not null;default:0"`
	ErrorFilePath string `gorm:"type:varchar(500)"`
	ErrorFileURL  string `gorm:"type:varchar(500)"`
	UploadedBy    string `gorm:"type:varchar(100)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (UploadedFile) TableName() string { return "uploaded_files" }
