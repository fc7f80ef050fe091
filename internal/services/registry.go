package services

// ServiceContainer bundles the service layer for handler wiring.
type ServiceContainer struct {
	Auth     *AuthService
	User     *UserService
	Plant    *PlantService
	Care     *CareService
	Identify *IdentifyService
	Share    *ShareService
	Billing  *BillingService
}
