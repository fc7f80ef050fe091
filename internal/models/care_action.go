package models

import "time"

type CareAction struct {
	BaseModel
	PlantID string         `gorm:"type:uuid;not null;index" json:"plant_id"`
	UserID  string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Kind    CareActionKind `gorm:"type:varchar(20);not null" json:"kind"`

	DueDate     time.Time  `gorm:"not null;index" json:"due_date"`
	IsCompleted bool       `gorm:"default:false;index" json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
