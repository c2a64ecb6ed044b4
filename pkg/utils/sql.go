package utils

import "gorm.io/gorm"

// DBOption customizes a query before it runs, most commonly to swap in a
// transaction handle or add a preload.
type DBOption func(*gorm.DB) *gorm.DB

func ApplyOptions(db *gorm.DB, opts ...DBOption) *gorm.DB {
	for _, opt := range opts {
		db = opt(db)
	}
	return db
}

// WithTx replaces the repository's connection with tx, letting a unit of
// work span repository calls.
func WithTx(tx *gorm.DB) DBOption {
	return func(_ *gorm.DB) *gorm.DB {
		return tx
	}
}

func WithPreload(column string) DBOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload(column)
	}
}
