package decision

import "makanApa/domain"

// passesHardFilters applies the exclusion rules in their fixed order. Any
// failure excludes the venue outright; there is no partial credit.
func passesHardFilters(scenario domain.ScenarioContext, venue domain.VenueRecord) bool {
	if scenario.IsRaining && !venue.Indoor {
		return false
	}

	if venue.TravelMinutes > scenario.MaxTravelMinutes {
		return false
	}

	// budget applies only in balanced and rushed modes
	if scenario.Mode == domain.ModeBalanced || scenario.Mode == domain.ModeRushed {
		if venue.AvgPrice > scenario.MaxBudget {
			return false
		}
	}

	// portion applies only in indulgent mode, and only when the user picked one
	if scenario.Mode == domain.ModeIndulgent && len(scenario.PortionFilter) > 0 {
		found := false
		for _, p := range scenario.PortionFilter {
			if venue.Portion == p {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}
