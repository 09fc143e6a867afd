package cmatch

import (
	"github.com/ontanj/cmatch/he"
	"github.com/ontanj/cmatch/logging"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Direction names the abundant side, the one whose orders are trimmed.
type Direction int

const (
	// BuyAbundant trims the buy side against the sell aggregate.
	BuyAbundant Direction = iota
	// SellAbundant trims the sell side against the buy aggregate.
	SellAbundant
)

func (d Direction) Trimmed() Side {
	if d == SellAbundant {
		return SideSell
	}
	return SideBuy
}

func (d Direction) FullyFilled() Side {
	return d.Trimmed().Opposite()
}

func (d Direction) String() string {
	if d == SellAbundant {
		return "sell-abundant"
	}
	return "buy-abundant"
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "buy-abundant":
		*d = BuyAbundant
	case "sell-abundant":
		*d = SellAbundant
	default:
		return errors.Errorf("unknown direction %q", text)
	}
	return nil
}

type state int

const (
	stateAggregate state = iota
	stateSelectDirection
	stateFillPass
	stateDone
)

// Engine runs the greedy fill over an encrypted order book. It holds the
// public cryptosystem and the comparison oracle; plaintext only reaches it as
// comparison bits and the two volumes decrypted at the end of a run.
type Engine struct {
	log    *logging.Logger
	cs     he.Cryptosystem
	cmp    *ComparisonOracle
	oracle he.Oracle
	tie    TiePolicy
	fit    FitPolicy
	obs    Observer
}

func NewEngine(log *logging.Logger, cfg Config, cs he.Cryptosystem, cmp *ComparisonOracle, oracle he.Oracle, obs Observer) *Engine {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Engine{
		log:    log,
		cs:     cs,
		cmp:    cmp,
		oracle: oracle,
		tie:    cfg.Tie,
		fit:    cfg.Fit,
		obs:    obs,
	}
}

// run is the state carried between the steps of one Run.
type run struct {
	pair      string
	book      *OrderBook
	buySum    he.Ciphertext
	sellSum   he.Ciphertext
	dir       Direction
	decisions []bool
}

// Run matches the book of one trading pair in a single trimming pass. Any
// error aborts the run and no partial report is returned.
func (e *Engine) Run(pair string, book *OrderBook) (*Report, error) {
	r := &run{pair: pair, book: book}
	var (
		report *Report
		err    error
	)
	for st := stateAggregate; st != stateDone; {
		switch st {
		case stateAggregate:
			err = e.aggregate(r)
			st = stateSelectDirection
		case stateSelectDirection:
			err = e.selectDirection(r)
			st = stateFillPass
		case stateFillPass:
			err = e.fillPass(r)
			st = stateDone
		}
		if err != nil {
			return nil, err
		}
	}

	if report, err = e.done(r); err != nil {
		return nil, err
	}
	e.obs.Completed(report)
	return report, nil
}

func (e *Engine) aggregate(r *run) error {
	var err error
	if r.buySum, err = Aggregate(e.cs, SideBuy, r.book.Buy); err != nil {
		return err
	}
	e.obs.Aggregated(SideBuy, r.buySum)
	if r.sellSum, err = Aggregate(e.cs, SideSell, r.book.Sell); err != nil {
		return err
	}
	e.obs.Aggregated(SideSell, r.sellSum)
	return nil
}

func (e *Engine) selectDirection(r *run) error {
	switch e.tie {
	case TieSellAbundant:
		sellLess, err := e.cmp.LessThan(r.sellSum, r.buySum)
		if err != nil {
			return errors.Wrap(err, "select direction")
		}
		r.dir = SellAbundant
		if sellLess {
			r.dir = BuyAbundant
		}
	default:
		buyLess, err := e.cmp.LessThan(r.buySum, r.sellSum)
		if err != nil {
			return errors.Wrap(err, "select direction")
		}
		r.dir = BuyAbundant
		if buyLess {
			r.dir = SellAbundant
		}
	}
	e.obs.DirectionSelected(r.dir)
	return nil
}

func (e *Engine) fillPass(r *run) error {
	side := r.dir.Trimmed()
	orders := r.book.side(side)
	remaining := r.sumOf(r.dir.FullyFilled())
	r.decisions = make([]bool, len(orders))

	for i, o := range orders {
		fits, err := e.fits(o, remaining)
		if err != nil {
			return errors.Wrapf(err, "%s order %d", side, i)
		}
		if fits {
			next, err := e.cs.Sub(remaining, o)
			if err != nil {
				return errors.Wrapf(capability("reduce remainder", err), "%s order %d", side, i)
			}
			remaining = next
		}
		r.decisions[i] = fits
		e.obs.OrderDecided(side, i, fits, remaining)
	}
	return nil
}

func (e *Engine) fits(o, remaining he.Ciphertext) (bool, error) {
	if e.fit == FitStrict {
		return e.cmp.LessThan(o, remaining)
	}
	over, err := e.cmp.LessThan(remaining, o)
	return !over, err
}

func (e *Engine) done(r *run) (*Report, error) {
	transaction, err := e.decryptVolume(r.sumOf(r.dir.FullyFilled()))
	if err != nil {
		return nil, errors.Wrap(err, "transaction volume")
	}
	addressable, err := e.decryptVolume(r.sumOf(r.dir.Trimmed()))
	if err != nil {
		return nil, errors.Wrap(err, "addressable volume")
	}
	report := Assemble(r.book, r.dir, r.decisions, transaction, addressable)
	report.Pair = r.pair
	e.log.Debug("run completed",
		zap.String("pair", r.pair),
		zap.Stringer("direction", r.dir),
		zap.Int("buy-orders", len(r.book.Buy)),
		zap.Int("sell-orders", len(r.book.Sell)),
	)
	return report, nil
}

func (e *Engine) decryptVolume(c he.Ciphertext) (uint64, error) {
	v, err := e.oracle.Decrypt(c)
	if err != nil {
		return 0, capability("decrypt volume", err)
	}
	if v == nil || !v.IsUint64() {
		return 0, capability("decrypt volume", errors.Errorf("volume %v does not fit 64 bits", v))
	}
	return v.Uint64(), nil
}

func (r *run) sumOf(s Side) he.Ciphertext {
	if s == SideSell {
		return r.sellSum
	}
	return r.buySum
}
