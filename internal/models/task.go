package model

import (
	"time"

	"task-dashboard.com/task-dashboard/internal/constants"
)

type Task struct {
	ID          string               `gorm:"primaryKey;size:36" json:"id"`
	UserID      string               `gorm:"size:36;not null;index" json:"userId"`
	Title       string               `gorm:"not null" json:"title"`
	Description string               `gorm:"not null;default:''" json:"description"`
	StartTime   time.Time            `gorm:"not null" json:"startTime"`
	EndTime     time.Time            `gorm:"not null" json:"endTime"`
	Priority    constants.Priority   `gorm:"type:varchar(10);not null;index" json:"priority"`
	Status      constants.TaskStatus `gorm:"type:varchar(10);not null;index" json:"status"`
	Version     uint                 `gorm:"not null;default:1" json:"version"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

func (t *Task) IsFinished() bool {
	return t.Status == constants.StatusFinished
}
