// Package cmatch matches the buy and sell quantities of one trading pair
// without decrypting individual orders. Both sides are aggregated under
// homomorphic encryption, the smaller side is filled completely and the other
// side is trimmed greedily in insertion order against the remaining volume.
package cmatch

import (
	"github.com/ontanj/cmatch/he"
	"github.com/ontanj/cmatch/logging"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Matcher owns one engine and ingests plaintext order books for it.
type Matcher struct {
	log    *logging.Logger
	cfg    Config
	cs     he.Cryptosystem
	cmp    *he.Comparator
	engine *Engine
}

// NewMatcher wires an engine to the public cryptosystem, the comparator and the
// decryption oracle. The oracle is the only key holder.
func NewMatcher(log *logging.Logger, cfg Config, cs he.Cryptosystem, cmp *he.Comparator, oracle he.Oracle, obs ...Observer) (*Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level)

	observers := Observers{NewLogObserver(log)}
	observers = append(observers, obs...)

	return &Matcher{
		log:    log,
		cfg:    cfg,
		cs:     cs,
		cmp:    cmp,
		engine: NewEngine(log, cfg, cs, NewComparisonOracle(cmp, oracle), oracle, observers),
	}, nil
}

// Bound is the largest side total the matcher accepts.
func (m *Matcher) Bound() uint64 {
	bound := m.cmp.Bound()
	// a total must also be a valid plaintext
	if n := m.cs.N(); n.IsUint64() && n.Uint64()-1 < bound {
		bound = n.Uint64() - 1
	}
	return bound
}

// Match encrypts both sides and runs the engine over them.
func (m *Matcher) Match(buy, sell []uint64) (*Report, error) {
	return m.MatchPair("", buy, sell)
}

// MatchPair is Match with the trading pair recorded in the report.
func (m *Matcher) MatchPair(pair string, buy, sell []uint64) (*Report, error) {
	book, err := NewOrderBook(m.cs, m.Bound(), buy, sell)
	if err != nil {
		m.log.Error("order book rejected", zap.String("pair", pair), zap.Error(err))
		return nil, err
	}
	report, err := m.engine.Run(pair, book)
	if err != nil {
		m.log.Error("matching failed", zap.String("pair", pair), zap.Error(err))
		return nil, err
	}
	m.log.Info("orders matched",
		zap.String("pair", pair),
		zap.Stringer("direction", report.Direction),
		zap.Uint64("transaction-volume", report.TransactionVolume),
	)
	return report, nil
}

// MatchOrders matches one book with fresh keys of the default configuration.
// Every call deals new keys, reuse a Matcher for repeated matching.
func MatchOrders(buy, sell []uint64) (*Report, error) {
	cfg := he.NewDefaultConfig()
	cs, sk, err := he.Setup(cfg)
	if err != nil {
		return nil, capability("setup keys", err)
	}
	oracle := he.NewKeyHolder(cs, sk)
	bits, statBits := cfg.Comparison()
	cmp, err := he.NewComparator(cs, oracle, bits, statBits)
	if err != nil {
		return nil, capability("setup comparator", err)
	}
	m, err := NewMatcher(logging.NewNopLogger(), NewDefaultConfig(), cs, cmp, oracle)
	if err != nil {
		return nil, err
	}
	report, err := m.Match(buy, sell)
	return report, errors.WithMessage(err, "match orders")
}
