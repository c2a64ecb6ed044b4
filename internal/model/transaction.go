package model

import "time"

const (
	PaymentMethodCreditCard = "credit_card"
	PaymentMethodDebitCard  = "debit_card"
	PaymentMethodUPI        = "upi"
	PaymentMethodNetbanking = "netbanking"
)

type Transaction struct {
	TransactionID string    `gorm:"primaryKey;type:varchar(20)" json:"transaction_id"`
	CustomerID    string    `gorm:"not null;index" json:"customer_id"`
	Date          time.Time `gorm:"type:date;not null" json:"date"`
	Category      string    `gorm:"type:varchar(50);not null;index" json:"category"`
	Merchant      string    `gorm:"not null" json:"merchant"`
	Amount        float64   `gorm:"not null" json:"amount"`
	PaymentMethod string    `gorm:"type:varchar(20);not null" json:"payment_method"`
	Description   string    `gorm:"type:text" json:"description"`
	Customer      Customer  `gorm:"foreignKey:CustomerID;references:CustomerID" json:"-"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
