package decision

import "makanApa/domain"

// Tags attached by the scenario scorers.
const (
	TagTopTier   = "TOP TIER"
	TagCheap     = "HEMAT"
	TagHeartyMax = "KENYANG MAX"
	TagLightning = "KILAT"
)

const (
	topTierRating   = 4.7
	topTierBonus    = 15
	tasteWeight     = 60.0
	indulgentProbaW = 40.0

	budgetProbaW        = 30.0
	priceCeiling        = 50000.0
	priceSensitivityDiv = 500.0
	cheapPriceMax       = 15000
	heartyPriceMax      = 18000
	heartyBonus         = 20

	lightningServeMax = 5
	lightningBonus    = 40
	quickServeMax     = 10
	quickBonus        = 20
	slowServeMin      = 15
	slowPenalty       = 50
)

// scoreScenario computes the composite score and tags for one venue. The
// scenario branches are mutually exclusive and the switch is exhaustive over
// ScenarioMode.
func scoreScenario(mode domain.ScenarioMode, proba float64, venue domain.VenueRecord) (float64, []string) {
	base := proba * 100
	tags := []string{}

	switch mode {
	case domain.ModeBalanced:
		return base, tags

	case domain.ModeIndulgent:
		score := proba*indulgentProbaW + (venue.TasteRating/5.0)*tasteWeight
		if venue.TasteRating >= topTierRating {
			score += topTierBonus
			tags = append(tags, TagTopTier)
		}
		return score, tags

	case domain.ModeBudget:
		sensitivity := (priceCeiling - float64(venue.AvgPrice)) / priceSensitivityDiv
		if sensitivity < 0 {
			sensitivity = 0
		}
		score := proba*budgetProbaW + sensitivity

		if venue.AvgPrice <= cheapPriceMax {
			tags = append(tags, TagCheap)
		}
		if (venue.Portion == domain.PortionBesar || venue.Portion == domain.PortionJumbo) && venue.AvgPrice <= heartyPriceMax {
			score += heartyBonus
			tags = append(tags, TagHeartyMax)
		}
		return score, tags

	case domain.ModeRushed:
		score := base
		if venue.ServeMinutes <= lightningServeMax {
			score += lightningBonus
			tags = append(tags, TagLightning)
		} else if venue.ServeMinutes <= quickServeMax {
			score += quickBonus
		}
		// independent of the bonus checks above, not else-chained
		if venue.ServeMinutes > slowServeMin {
			score -= slowPenalty
		}
		return score, tags
	}

	return base, tags
}
