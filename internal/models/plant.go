package models

import "time"

type Plant struct {
	BaseModel
	UserID   string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name     string `gorm:"not null" json:"name"`
	Species  string `json:"species"`
	ImageURL string `json:"image_url"`
	Notes    string `json:"notes"`

	// Care cadence in days; nil means the kind is not scheduled for this plant.
	WaterFrequency     *int `json:"water_frequency,omitempty"`
	FertilizeFrequency *int `json:"fertilize_frequency,omitempty"`

	LastWatered    *time.Time `json:"last_watered,omitempty"`
	LastFertilized *time.Time `json:"last_fertilized,omitempty"`

	// Relations
	CareActions []CareAction `gorm:"foreignKey:PlantID" json:"-"`
}

// FrequencyFor returns the cadence for the given care kind, nil when unscheduled.
func (p *Plant) FrequencyFor(kind CareActionKind) *int {
	switch kind {
	case CareActionWater:
		return p.WaterFrequency
	case CareActionFertilize:
		return p.FertilizeFrequency
	}
	return nil
}
