package model

import "time"

const (
	FileTypeTransaction = "transaction"
	FileTypeInvestment  = "investment"
	FileTypeCustomer    = "customer"
	FileTypeDocument    = "document"
)

type UploadedFile struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	FileName        string    `gorm:"not null" json:"file_name"`
	FileType        string    `gorm:"type:varchar(20);not null" json:"file_type"`
	FilePath        string    `gorm:"not null" json:"file_path"`
	CustomerID      string    `gorm:"not null;index" json:"customer_id"`
	UploadedAt      time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
	Processed       bool      `gorm:"default:false" json:"processed"`
	RecordsImported int       `gorm:"default:0" json:"records_imported"`
	Customer        Customer  `gorm:"foreignKey:CustomerID;references:CustomerID" json:"-"`
}

func (UploadedFile) TableName() string {
	return "uploaded_files"
}
