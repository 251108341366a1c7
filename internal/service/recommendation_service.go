package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
)

// idealAllocations maps each risk profile to its target allocation table
// (asset class → target percentage). The tables are fixed configuration,
// keyed by the closed profile enumeration.
var idealAllocations = map[model.RiskProfile]map[model.AssetType]float64{
	model.RiskProfileAggressive: {
		model.AssetTypeCrypto:     30,
		model.AssetTypeStock:      40,
		model.AssetTypeETF:        10,
		model.AssetTypeBond:       5,
		model.AssetTypeCash:       5,
		model.AssetTypeRealEstate: 10,
	},
	model.RiskProfileModerate: {
		model.AssetTypeCrypto:     15,
		model.AssetTypeStock:      30,
		model.AssetTypeETF:        15,
		model.AssetTypeBond:       15,
		model.AssetTypeCash:       10,
		model.AssetTypeRealEstate: 15,
	},
	model.RiskProfileConservative: {
		model.AssetTypeCrypto:     5,
		model.AssetTypeStock:      20,
		model.AssetTypeETF:        10,
		model.AssetTypeBond:       30,
		model.AssetTypeCash:       20,
		model.AssetTypeRealEstate: 15,
	},
}

// riskWeights assigns each asset class a volatility weight on a 0–10 scale,
// used for the value-weighted portfolio risk score.
var riskWeights = map[model.AssetType]float64{
	model.AssetTypeCrypto:      9,
	model.AssetTypeStock:       6,
	model.AssetTypeETF:         4,
	model.AssetTypeBond:        2,
	model.AssetTypeCash:        1,
	model.AssetTypeRealEstate:  3,
	model.AssetTypeVehicle:     3,
	model.AssetTypeCollectible: 7,
	model.AssetTypeElectronics: 5,
	model.AssetTypeOther:       5,
}

// defaultRiskWeight covers any class missing from the table.
const defaultRiskWeight = 5

// GenerateRecommendations evaluates the advisory rules over the valued
// assets and returns the findings ordered by priority (1 = most severe,
// stable for equal priorities). The function is pure and deterministic:
// identical inputs produce an identical ordered list, and nothing is
// persisted.
func GenerateRecommendations(assets []model.ValuedAsset, profile model.RiskProfile) []model.Recommendation {
	recommendations := []model.Recommendation{}

	totalValue := 0.0
	for _, a := range assets {
		if a.TotalValueUSD != nil {
			totalValue += *a.TotalValueUSD
		}
	}

	// An empty portfolio short-circuits every other rule.
	if totalValue == 0 {
		return append(recommendations, model.Recommendation{
			ID:          "no-assets",
			Type:        model.RecommendationInfo,
			Title:       "Start building your portfolio",
			Description: "Add your assets to receive personalized portfolio management recommendations.",
			Priority:    1,
		})
	}

	// Current allocation per class. A class key exists for every held asset
	// even when its value is unknown, so the diversification rule counts
	// classes the user actually holds.
	allocation := map[model.AssetType]float64{}
	for _, a := range assets {
		var value float64
		if a.TotalValueUSD != nil {
			value = *a.TotalValueUSD
		}
		allocation[a.AssetType] += value
	}

	allocationPct := map[model.AssetType]float64{}
	for assetType, value := range allocation {
		allocationPct[assetType] = value / totalValue * 100
	}

	ideal := idealAllocations[profile]

	// Rule: crypto allocation above 40%.
	if allocationPct[model.AssetTypeCrypto] > 40 {
		recommendations = append(recommendations, model.Recommendation{
			ID:    "crypto-high",
			Type:  model.RecommendationWarning,
			Title: "High cryptocurrency allocation",
			Description: fmt.Sprintf(
				"Cryptocurrencies make up %.1f%% of your portfolio. Consider reducing the share to %.0f%% to lower volatility.",
				allocationPct[model.AssetTypeCrypto], ideal[model.AssetTypeCrypto],
			),
			Priority: 1,
		})
	}

	// Rule: any single asset above 30% of total value (strict), one finding
	// per qualifying asset keyed by asset identity.
	for _, a := range assets {
		if a.TotalValueUSD == nil {
			continue
		}
		assetPct := *a.TotalValueUSD / totalValue * 100
		if assetPct > 30 {
			recommendations = append(recommendations, model.Recommendation{
				ID:    "concentration-" + a.ID,
				Type:  model.RecommendationWarning,
				Title: "High concentration: " + a.Name,
				Description: fmt.Sprintf(
					"%s makes up %.1f%% of your portfolio. High concentration increases risk; consider diversifying.",
					a.Name, assetPct,
				),
				Priority: 2,
			})
		}
	}

	// Rule: cash reserve below 10%.
	if allocationPct[model.AssetTypeCash] < 10 {
		recommendations = append(recommendations, model.Recommendation{
			ID:    "low-cash",
			Type:  model.RecommendationSuggestion,
			Title: "Low cash reserve",
			Description: fmt.Sprintf(
				"Cash makes up %.1f%% of your portfolio. Keeping at least 10%% in liquid funds is recommended as a safety cushion.",
				allocationPct[model.AssetTypeCash],
			),
			Priority: 3,
		})
	}

	// Rule: no bond allocation, unless the profile is aggressive.
	if allocation[model.AssetTypeBond] == 0 && profile != model.RiskProfileAggressive {
		recommendations = append(recommendations, model.Recommendation{
			ID:    "no-bonds",
			Type:  model.RecommendationSuggestion,
			Title: "Add bonds for stability",
			Description: fmt.Sprintf(
				"Your portfolio holds no bonds. The %s profile recommends %.0f%% in bonds.",
				profile, ideal[model.AssetTypeBond],
			),
			Priority: 4,
		})
	}

	// Rule: fewer than three distinct asset classes.
	if len(allocation) < 3 {
		recommendations = append(recommendations, model.Recommendation{
			ID:    "low-diversification",
			Type:  model.RecommendationSuggestion,
			Title: "Low diversification",
			Description: fmt.Sprintf(
				"Your portfolio includes only %d asset class(es). Consider expanding into other classes to reduce risk.",
				len(allocation),
			),
			Priority: 3,
		})
	}

	// Rule: conservative profile with crypto + stocks above 50%.
	if profile == model.RiskProfileConservative {
		riskyPct := allocationPct[model.AssetTypeCrypto] + allocationPct[model.AssetTypeStock]
		if riskyPct > 50 {
			recommendations = append(recommendations, model.Recommendation{
				ID:    "too-risky-conservative",
				Type:  model.RecommendationWarning,
				Title: "Portfolio is too risky",
				Description: fmt.Sprintf(
					"Stocks and cryptocurrencies make up %.1f%% of your portfolio. A conservative profile should keep risky assets under 25%%.",
					riskyPct,
				),
				Priority: 1,
			})
		}
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Priority < recommendations[j].Priority
	})

	return recommendations
}

// IdealAllocation returns the target allocation table for a profile.
// The returned map is a copy; mutating it does not affect the configuration.
func IdealAllocation(profile model.RiskProfile) map[model.AssetType]float64 {
	ideal := make(map[model.AssetType]float64, len(idealAllocations[profile]))
	for assetType, pct := range idealAllocations[profile] {
		ideal[assetType] = pct
	}
	return ideal
}

// RiskScore computes the value-weighted average risk weight of the
// portfolio on a 0–10 scale, rounded to one decimal. A portfolio with zero
// total value scores zero.
func RiskScore(assets []model.ValuedAsset) float64 {
	totalValue := 0.0
	for _, a := range assets {
		if a.TotalValueUSD != nil {
			totalValue += *a.TotalValueUSD
		}
	}
	if totalValue == 0 {
		return 0
	}

	weightedSum := 0.0
	for _, a := range assets {
		if a.TotalValueUSD == nil {
			continue
		}
		weight, ok := riskWeights[a.AssetType]
		if !ok {
			weight = defaultRiskWeight
		}
		weightedSum += *a.TotalValueUSD / totalValue * weight
	}

	return math.Round(weightedSum*10) / 10
}
