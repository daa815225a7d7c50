package domain

// BoundFeatureRow is one row of the gold training table: a cleaned
// transaction with the broadcast weather reading, its own day's promo count
// and the derived model features.
type BoundFeatureRow struct {
	Date         string
	Time         string
	Venue        string
	Menu         string
	Category     string
	Method       string
	Price        int
	Satisfaction int

	Condition   string
	Temperature float64
	Humidity    int
	PromoCount  int

	IsRain      int
	HasPromo    int
	IsLunchTime int
}
