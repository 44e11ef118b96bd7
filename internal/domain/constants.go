package domain

// Provider name constants - stable identifiers for supported OAuth providers
const (
	ProviderTwitter = "twitter"
	ProviderGoogle  = "google"
)

// ValidProviders lists all providers the link flow accepts
var ValidProviders = []string{ProviderTwitter, ProviderGoogle}

// IsValidProvider checks whether the name refers to a supported provider
func IsValidProvider(name string) bool {
	for _, p := range ValidProviders {
		if p == name {
			return true
		}
	}
	return false
}
