package handlers

// AppHandlers bundles the HTTP handlers for route registration.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	PlantHandler    *PlantHandler
	CareHandler     *CareHandler
	IdentifyHandler *IdentifyHandler
	BillingHandler  *BillingHandler
	AdminHandler    *AdminHandler
	ShareHandler    *ShareHandler
}
