package models

type UserRole string
type SubscriptionType string
type CareActionKind string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	SubscriptionFree            SubscriptionType = "free"
	SubscriptionTrial           SubscriptionType = "trial"
	SubscriptionPremium         SubscriptionType = "premium"
	SubscriptionPremiumLifetime SubscriptionType = "premium_lifetime"

	CareActionWater     CareActionKind = "water"
	CareActionFertilize CareActionKind = "fertilize"
)

// ValidSubscriptionType reports whether t is one of the known tiers.
func ValidSubscriptionType(t SubscriptionType) bool {
	switch t {
	case SubscriptionFree, SubscriptionTrial, SubscriptionPremium, SubscriptionPremiumLifetime:
		return true
	}
	return false
}

// ValidCareActionKind reports whether k is a known care action kind.
func ValidCareActionKind(k CareActionKind) bool {
	return k == CareActionWater || k == CareActionFertilize
}
