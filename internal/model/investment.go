package model

import "time"

// Investment holds one product position. The returns fields are supplied by
// the upstream data feed and stored as-is, they are never recomputed from
// invested_amount/current_value at write time.
type Investment struct {
	InvestmentID      string    `gorm:"primaryKey;type:varchar(20)" json:"investment_id"`
	CustomerID        string    `gorm:"not null;index" json:"customer_id"`
	ProductType       string    `gorm:"type:varchar(50);not null" json:"product_type"`
	ProductName       string    `gorm:"not null" json:"product_name"`
	PurchaseDate      time.Time `gorm:"type:date;not null" json:"purchase_date"`
	InvestedAmount    float64   `gorm:"not null" json:"invested_amount"`
	CurrentValue      float64   `gorm:"not null" json:"current_value"`
	Units             float64   `gorm:"default:0" json:"units"`
	PurchaseNAV       float64   `gorm:"column:purchase_nav;default:0" json:"purchase_nav"`
	CurrentNAV        float64   `gorm:"column:current_nav;default:0" json:"current_nav"`
	ReturnsAbsolute   float64   `gorm:"not null" json:"returns_absolute"`
	ReturnsPercentage float64   `gorm:"not null" json:"returns_percentage"`
	RiskLevel         string    `gorm:"type:varchar(10);not null" json:"risk_level"`
	Customer          Customer  `gorm:"foreignKey:CustomerID;references:CustomerID" json:"-"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Investment) TableName() string {
	return "investments"
}
