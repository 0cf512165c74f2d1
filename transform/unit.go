package transform

import (
	"dns-stats-datasource/models"
)

const UnitNone = "none"

// UnitResolver picks the display unit for a query's values and the
// conversion applied to each value.
type UnitResolver func(q models.Query, data []models.RawStats) (unit string, convert func(float64) float64)

func identity(v float64) float64 { return v }

// NoUnit reports request counts as-is.
func NoUnit(models.Query, []models.RawStats) (string, func(float64) float64) {
	return UnitNone, identity
}
