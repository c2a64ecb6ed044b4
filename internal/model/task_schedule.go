package model

import (
	"database/sql"
	"time"
)

// TaskSchedule binds a maintenance job to a cron expression. NextExecution is
// recomputed from the expression after every run.
type TaskSchedule struct {
	ID             uint   `gorm:"primaryKey"`
	JobID          uint   `gorm:"not null"`
	CronExpression string `gorm:"type:varchar(100)"`
	IsActive       bool   `gorm:"default:true"`
	NextExecution  sql.NullTime
	LastExecution  sql.NullTime
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`

	Job Job `gorm:"foreignKey:JobID;references:ID"`
}

func (TaskSchedule) TableName() string {
	return "task_schedules"
}
