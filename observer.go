package cmatch

import (
	"github.com/ontanj/cmatch/he"
	"github.com/ontanj/cmatch/logging"

	"go.uber.org/zap"
)

// Observer follows a matching run. It sees the encrypted intermediate values
// but cannot change the course of the run.
type Observer interface {
	Aggregated(side Side, sum he.Ciphertext)
	DirectionSelected(dir Direction)
	// OrderDecided is called once per order of the trimmed side with the
	// remainder left after the decision.
	OrderDecided(side Side, index int, filled bool, remaining he.Ciphertext)
	Completed(report *Report)
}

type NopObserver struct{}

func (NopObserver) Aggregated(Side, he.Ciphertext) {}
func (NopObserver) DirectionSelected(Direction) {}
func (NopObserver) OrderDecided(Side, int, bool, he.Ciphertext) {}
func (NopObserver) Completed(*Report) {}

// Observers fans every event out in order.
type Observers []Observer

func (obs Observers) Aggregated(side Side, sum he.Ciphertext) {
	for _, o := range obs {
		o.Aggregated(side, sum)
	}
}

func (obs Observers) DirectionSelected(dir Direction) {
	for _, o := range obs {
		o.DirectionSelected(dir)
	}
}

func (obs Observers) OrderDecided(side Side, index int, filled bool, remaining he.Ciphertext) {
	for _, o := range obs {
		o.OrderDecided(side, index, filled, remaining)
	}
}

func (obs Observers) Completed(report *Report) {
	for _, o := range obs {
		o.Completed(report)
	}
}

// logObserver narrates a run at debug level. Only decisions are logged, never
// ciphertext contents.
type logObserver struct {
	log *logging.Logger
}

func NewLogObserver(log *logging.Logger) Observer {
	return &logObserver{log: log}
}

func (l *logObserver) Aggregated(side Side, _ he.Ciphertext) {
	l.log.Debug("side aggregated", zap.Stringer("side", side))
}

func (l *logObserver) DirectionSelected(dir Direction) {
	l.log.Debug("direction selected",
		zap.Stringer("trimmed", dir.Trimmed()),
		zap.Stringer("fully-filled", dir.FullyFilled()),
	)
}

func (l *logObserver) OrderDecided(side Side, index int, filled bool, _ he.Ciphertext) {
	l.log.Debug("order decided",
		zap.Stringer("side", side),
		zap.Int("index", index),
		zap.Bool("filled", filled),
	)
}

func (l *logObserver) Completed(r *Report) {
	l.log.Debug("matching completed",
		zap.String("pair", r.Pair),
		zap.Stringer("direction", r.Direction),
		zap.Uint64("transaction-volume", r.TransactionVolume),
		zap.Uint64("addressable-volume", r.AddressableVolume),
	)
}
