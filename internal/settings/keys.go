package settings

// Well-known config keys referenced by name elsewhere in the server.
const (
	// KeyAllowRegister gates self-service account registration.
	KeyAllowRegister = "isAllowRegister"
	// KeyOAuth2Providers holds the OAuth provider list consumed by the auth layer.
	KeyOAuth2Providers = "oauth2Providers"
)

// publicBootstrapKeys are visible to anonymous callers before authentication,
// so the UI can render theme and language before login.
var publicBootstrapKeys = map[string]struct{}{
	"isCloseBackgroundAnimation": {},
	"isAllowRegister":            {},
	"language":                   {},
	"theme":                      {},
	"themeColor":                 {},
	"themeForegroundColor":       {},
	"maxHomePageWidth":           {},
	"customBackgroundUrl":        {},
	"hidePcEditor":               {},
}

// userPreferenceKeys are scoped per user; each user keeps an independent row.
var userPreferenceKeys = map[string]struct{}{
	"language":                   {},
	"theme":                      {},
	"themeColor":                 {},
	"themeForegroundColor":       {},
	"maxHomePageWidth":           {},
	"customBackgroundUrl":        {},
	"hidePcEditor":               {},
	"isCloseBackgroundAnimation": {},
	"isHiddenMobileBar":          {},
	"isOrderByCreateTime":        {},
	"textFoldLength":             {},
	"timeFormat":                 {},
	"toolbarVisibility":          {},
	"smallDeviceCardColumns":     {},
	"mediumDeviceCardColumns":    {},
	"largeDeviceCardColumns":     {},
	"defaultHomePage":            {},
}

// globalKeys are writable only by a superadmin. Together with the user
// preference keys they form the recognized key set for config updates.
var globalKeys = map[string]struct{}{
	"isAllowRegister":       {},
	"oauth2Providers":       {},
	"mainModelId":           {},
	"embeddingModelId":      {},
	"voiceModelId":          {},
	"rerankModelId":         {},
	"imageModelId":          {},
	"audioModelId":          {},
	"embeddingDims":         {},
	"embeddingTopK":         {},
	"embeddingScore":        {},
	"isUseAI":               {},
	"webhookEndpoint":       {},
	"spotifyConsumerKey":    {},
	"spotifyConsumerSecret": {},
}

// IsPublicBootstrapKey reports whether anonymous callers may read the key.
func IsPublicBootstrapKey(key string) bool {
	_, ok := publicBootstrapKeys[key]
	return ok
}

// IsUserPreferenceKey reports whether the key is scoped per user.
func IsUserPreferenceKey(key string) bool {
	_, ok := userPreferenceKeys[key]
	return ok
}

// IsKnownKey reports whether the key is accepted by the update endpoint.
// Plugin-scoped keys go through the plugin operations instead.
func IsKnownKey(key string) bool {
	if IsUserPreferenceKey(key) {
		return true
	}
	_, ok := globalKeys[key]
	return ok
}
