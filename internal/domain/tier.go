package domain

import "strings"

// TierPlan pairs a tier title with its storage quota.
type TierPlan struct {
	Title   string
	Storage string
}

// DefaultTier applies to customers with no upgrade history.
var DefaultTier = TierPlan{Title: "STANDARD TIER", Storage: "200GB"}

// tierTable maps normalized plan names to their tier/storage pair.
var tierTable = map[string]TierPlan{
	"standard": {Title: "STANDARD TIER", Storage: "200GB"},
	"business": {Title: "BUSINESS TIER", Storage: "400GB"},
	"premium":  {Title: "PREMIUM TIER", Storage: "600GB"},
}

// InferTier normalizes a free-text plan selection ("Business Plan",
// " premium ", ...) into a known tier by case-insensitive substring match.
// Unrecognized input falls back to the default tier.
func InferTier(selected string) TierPlan {
	normalized := strings.ToLower(strings.TrimSpace(selected))
	for key, plan := range tierTable {
		if strings.Contains(normalized, key) {
			return plan
		}
	}
	return DefaultTier
}
