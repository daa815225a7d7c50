package silver

import "context"

// Lake layer prefixes. These are the persisted-state layout shared with the
// existing lake and must stay bit-exact.
const (
	BronzeSQLPrefix     = "bronze/sql/"
	BronzeWeatherPrefix = "bronze/weather/"
	BronzePromoPrefix   = "bronze/promo/"

	SilverSQLPrefix     = "silver/sql_cleaned/"
	SilverWeatherPrefix = "silver/weather_cleaned/"
	SilverPromoPrefix   = "silver/promo_cleaned/"
)

const keyTimeFormat = "20060102_1504"

// LakeGateway is the slice of the object store the cleaners need.
type LakeGateway interface {
	Latest(ctx context.Context, prefix string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
}
