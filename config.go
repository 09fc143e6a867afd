package cmatch

import (
	"github.com/ontanj/cmatch/logging"

	"github.com/pkg/errors"
)

// TiePolicy decides which side is trimmed when both aggregates are equal.
type TiePolicy string

// FitPolicy decides whether an order equal to the remainder is filled.
type FitPolicy string

const (
	// TieBuyAbundant trims the buy side on equal aggregates.
	TieBuyAbundant TiePolicy = "buy-abundant"
	// TieSellAbundant trims the sell side on equal aggregates.
	TieSellAbundant TiePolicy = "sell-abundant"

	// FitInclusive fills an order that is at most the remainder.
	FitInclusive FitPolicy = "inclusive"
	// FitStrict fills an order only when it is below the remainder.
	FitStrict FitPolicy = "strict"
)

const namedLogger = "matching"

// Config contains the configurable items for the matching engine.
type Config struct {
	Level logging.Level `long:"log-level" description:"Log level of the matching engine"`
	Tie   TiePolicy     `long:"tie" choice:"buy-abundant" choice:"sell-abundant" description:"Side trimmed when both sides hold the same volume"`
	Fit   FitPolicy     `long:"fit" choice:"inclusive" choice:"strict" description:"Whether an order equal to the remaining volume is filled"`
}

// NewDefaultConfig creates an instance of the package-specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level: logging.InfoLevel,
		Tie:   TieBuyAbundant,
		Fit:   FitInclusive,
	}
}

// Validate rejects policies the command line would not accept. Values read
// from a configuration file skip the flag choices and are checked here.
func (c Config) Validate() error {
	switch c.Tie {
	case TieBuyAbundant, TieSellAbundant:
	default:
		return errors.Wrapf(ErrInvalidPolicy, "tie policy %q", c.Tie)
	}
	switch c.Fit {
	case FitInclusive, FitStrict:
	default:
		return errors.Wrapf(ErrInvalidPolicy, "fit policy %q", c.Fit)
	}
	return nil
}
