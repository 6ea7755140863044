package utils

// Cache key prefixes.
const (
	// AuthCachePrefix prefixes token-hash entries in the auth cache DB.
	AuthCachePrefix = "auth:"
	// VaultCachePrefix prefixes cached vault listings in the generic cache DB.
	VaultCachePrefix = "vault:"
)
