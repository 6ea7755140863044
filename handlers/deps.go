package handlers

import (
	"lendvault/services/billing"
	"lendvault/services/user"
	"lendvault/services/vault"
)

// Package-level service instances wired at startup.
var (
	userService    user.UserService
	vaultService   vault.VaultService
	billingService billing.BillingService
)

// InitHandlers wires the service layer into the HTTP handlers.
func InitHandlers(us user.UserService, vs vault.VaultService, bs billing.BillingService) {
	userService = us
	vaultService = vs
	billingService = bs
}
