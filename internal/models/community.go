package models

type CommunityShare struct {
	BaseModel
	UserID  string `gorm:"type:uuid;not null;index" json:"user_id"`
	PlantID string `gorm:"type:uuid;not null;index" json:"plant_id"`
	Caption string `json:"caption"`
	Likes   int    `gorm:"default:0" json:"likes"`
}
