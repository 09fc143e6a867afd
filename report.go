package cmatch

// Report is the outcome of one matching run. Fill vectors are in insertion
// order and hold the original quantity of filled orders, 0 otherwise.
type Report struct {
	Pair              string    `json:"pair,omitempty" yaml:"pair,omitempty"`
	Direction         Direction `json:"direction" yaml:"direction"`
	TransactionVolume uint64    `json:"transaction_volume" yaml:"transaction_volume"`
	AddressableVolume uint64    `json:"addressable_volume" yaml:"addressable_volume"`
	BuyFill           []uint64  `json:"buy_fill" yaml:"buy_fill"`
	SellFill          []uint64  `json:"sell_fill" yaml:"sell_fill"`
}

// Assemble shapes the decisions of a run into a report. The fully filled side
// copies its quantities, the trimmed side keeps the quantity of every filled
// order.
func Assemble(book *OrderBook, dir Direction, decisions []bool, transaction, addressable uint64) *Report {
	full := append([]uint64(nil), book.quantities(dir.FullyFilled())...)
	trimmedQs := book.quantities(dir.Trimmed())
	trimmed := make([]uint64, len(trimmedQs))
	for i, filled := range decisions {
		if filled {
			trimmed[i] = trimmedQs[i]
		}
	}

	r := &Report{
		Direction:         dir,
		TransactionVolume: transaction,
		AddressableVolume: addressable,
	}
	if dir.Trimmed() == SideBuy {
		r.BuyFill, r.SellFill = trimmed, full
	} else {
		r.BuyFill, r.SellFill = full, trimmed
	}
	return r
}

// Filled sums a fill vector.
func Filled(fill []uint64) uint64 {
	var total uint64
	for _, q := range fill {
		total += q
	}
	return total
}
