package models

import "time"

type User struct {
	BaseModel
	Username     string   `gorm:"uniqueIndex;not null" json:"username"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);default:'user'" json:"role"`

	SubscriptionType         SubscriptionType `gorm:"type:varchar(30);default:'free';index" json:"subscription_type"`
	IdentificationsRemaining int              `gorm:"default:5" json:"identifications_remaining"`
	TrialEndDate             *time.Time       `json:"trial_end_date,omitempty"`

	// Billing references held by the payment provider.
	StripeCustomerID     string `gorm:"index" json:"-"`
	StripeSubscriptionID string `json:"-"`

	// Relations
	Plants []Plant `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
