package typeset

import (
	"time"

	"github.com/tsawler/typeset/flow"
	"github.com/tsawler/typeset/metrics"
	"github.com/tsawler/typeset/tables"
)

// Config holds engine configuration
type Config struct {
	// Section is the page geometry in effect before any section break.
	// Default: Letter, one-inch margins, a single column.
	Section flow.SectionProperties

	// Measurer supplies raw character advances to the font metrics
	// cache.
	// Default: the built-in standard-family measurer.
	Measurer metrics.CharMeasurer

	// Breaker holds line breaking parameters. Zero fields fall back to
	// the breaker's defaults.
	Breaker metrics.BreakerConfig

	// TableRecalcDelay is the quiet period after a cell edit before a
	// table's columns recalculate.
	// Default: 100ms.
	TableRecalcDelay time.Duration
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Section: flow.SectionProperties{
			PageSize: flow.Letter,
			Margins:  flow.UniformMargins(72.0),
			Columns:  flow.Columns{Count: 1},
		},
		Measurer:         metrics.NewStandardMeasurer(),
		Breaker:          metrics.DefaultBreakerConfig(),
		TableRecalcDelay: tables.DefaultTrackerConfig().RecalcDelay,
	}
}
