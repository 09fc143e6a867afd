package cmatch

import (
	"github.com/ontanj/cmatch/he"
)

// Aggregate folds the orders from index 0 upwards into one encrypted sum.
func Aggregate(cs he.Cryptosystem, side Side, orders []he.Ciphertext) (he.Ciphertext, error) {
	if len(orders) == 0 {
		return nil, &InputError{Side: side, Index: -1, Err: ErrEmptySide}
	}
	sum := orders[0]
	for _, o := range orders[1:] {
		next, err := cs.Add(sum, o)
		if err != nil {
			return nil, capability("aggregate "+side.String()+" side", err)
		}
		sum = next
	}
	return sum, nil
}
