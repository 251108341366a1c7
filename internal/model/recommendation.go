package model

// RecommendationType is the severity tier of an advisory finding.
type RecommendationType string

const (
	RecommendationWarning    RecommendationType = "warning"
	RecommendationSuggestion RecommendationType = "suggestion"
	RecommendationInfo       RecommendationType = "info"
)

// Recommendation is a single advisory finding. Recommendations are
// regenerated on every request and never persisted.
type Recommendation struct {
	ID          string             `json:"id"`
	Type        RecommendationType `json:"type"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	// Priority orders findings, 1 being the most severe.
	Priority int `json:"priority"`
}

// RiskProfile selects the ideal allocation table and thresholds used by the
// recommendation engine.
type RiskProfile string

const (
	RiskProfileAggressive   RiskProfile = "aggressive"
	RiskProfileModerate     RiskProfile = "moderate"
	RiskProfileConservative RiskProfile = "conservative"
)

// IsValid reports whether p is a known risk profile.
func (p RiskProfile) IsValid() bool {
	switch p {
	case RiskProfileAggressive, RiskProfileModerate, RiskProfileConservative:
		return true
	}
	return false
}
