package domain

import "fmt"

type Portion string

const (
	PortionSedang Portion = "Sedang"
	PortionBesar  Portion = "Besar"
	PortionJumbo  Portion = "Jumbo"
)

func ParsePortion(s string) (Portion, error) {
	switch Portion(s) {
	case PortionSedang, PortionBesar, PortionJumbo:
		return Portion(s), nil
	}
	return "", fmt.Errorf("unknown portion size: %q", s)
}

// VenueRecord is one row of the cleaned venue master. Numeric fields are
// non-negative, taste_rating defaults to 3.0 and portion to Sedang when the
// raw catalog leaves them blank; they are never null.
type VenueRecord struct {
	Name          string  `json:"name"`
	Indoor        bool    `json:"indoor"`
	Spicy         bool    `json:"spicy"`
	TravelMinutes int     `json:"travel_minutes"`
	AvgPrice      int     `json:"avg_price"`
	ServeMinutes  int     `json:"serve_minutes"`
	TasteRating   float64 `json:"taste_rating"`
	Portion       Portion `json:"portion"`
}
