package model

import "time"

type Customer struct {
	CustomerID         string    `gorm:"primaryKey;type:varchar(20)" json:"customer_id"`
	Name               string    `gorm:"not null" json:"name"`
	Age                int       `gorm:"not null" json:"age"`
	RiskLevel          string    `gorm:"type:varchar(10);not null" json:"risk_level"`
	AnnualIncome       float64   `gorm:"not null" json:"annual_income"`
	FinancialGoals     string    `json:"financial_goals"`
	AccountOpeningDate time.Time `gorm:"type:date;not null" json:"account_opening_date"`
	Email              string    `gorm:"not null" json:"email"`
	Phone              string    `json:"phone"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}
