package metrics

import (
	"strconv"

	"github.com/ontanj/cmatch"
	"github.com/ontanj/cmatch/he"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cmatch"

// Observer counts the events of matching runs. It implements cmatch.Observer.
type Observer struct {
	reg *prometheus.Registry

	runs              *prometheus.CounterVec
	comparisons       prometheus.Counter
	decisions         *prometheus.CounterVec
	transactionVolume prometheus.Gauge
	addressableVolume prometheus.Gauge
}

// NewObserver registers the matching instruments on a fresh registry.
func NewObserver() (*Observer, error) {
	o := &Observer{
		reg: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed matching runs by trimmed side",
		}, []string{"trimmed"}),
		comparisons: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparisons_total",
			Help:      "Encrypted comparisons answered by the decryption oracle",
		}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fill_decisions_total",
			Help:      "Fill decisions on the trimmed side",
		}, []string{"side", "filled"}),
		transactionVolume: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transaction_volume",
			Help:      "Transaction volume of the last run",
		}),
		addressableVolume: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "addressable_volume",
			Help:      "Aggregate of the abundant side in the last run",
		}),
	}
	for _, c := range []prometheus.Collector{o.runs, o.comparisons, o.decisions, o.transactionVolume, o.addressableVolume} {
		if err := o.reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "could not register metric")
		}
	}
	return o, nil
}

func (o *Observer) Registry() *prometheus.Registry {
	return o.reg
}

func (o *Observer) Aggregated(cmatch.Side, he.Ciphertext) {}

// the direction costs one comparison
func (o *Observer) DirectionSelected(cmatch.Direction) {
	o.comparisons.Inc()
}

func (o *Observer) OrderDecided(side cmatch.Side, _ int, filled bool, _ he.Ciphertext) {
	o.comparisons.Inc()
	o.decisions.WithLabelValues(side.String(), strconv.FormatBool(filled)).Inc()
}

func (o *Observer) Completed(r *cmatch.Report) {
	o.runs.WithLabelValues(r.Direction.Trimmed().String()).Inc()
	o.transactionVolume.Set(float64(r.TransactionVolume))
	o.addressableVolume.Set(float64(r.AddressableVolume))
}

// WriteTextfile dumps the registry in the text exposition format.
func (o *Observer) WriteTextfile(path string) error {
	return errors.Wrap(prometheus.WriteToTextfile(path, o.reg), "could not write metrics")
}
