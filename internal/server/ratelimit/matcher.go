package ratelimit

import "strings"

// MatchEndpoint resolves the tier for a request. Exact path+method matches
// win over prefix matches; a tier path ending in "/" matches as a prefix,
// so "/matches/" covers "/matches/{id}". The health check is always exempt.
// Returns nil when no tier applies.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{} // Limit 0 means exempt
	}

	var prefixHit *EndpointConfig
	for i := range configs {
		tier := &configs[i]
		if tier.Method != method {
			continue
		}
		if tier.Path == path {
			return tier
		}
		if prefixHit == nil && strings.HasSuffix(tier.Path, "/") && strings.HasPrefix(path, tier.Path) {
			prefixHit = tier
		}
	}
	return prefixHit
}
