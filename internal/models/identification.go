package models

import "gorm.io/datatypes"

// Identification is the stored result of one plant-recognition call.
type Identification struct {
	BaseModel
	UserID        string  `gorm:"type:uuid;not null;index" json:"user_id"`
	ImageURL      string  `json:"image_url"`
	TopSuggestion string  `json:"top_suggestion"`
	Confidence    float64 `json:"confidence"`

	// Full ranked suggestion list as returned by the recognition provider.
	RawSuggestions datatypes.JSON `gorm:"type:jsonb" json:"raw_suggestions"`
}
