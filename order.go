package cmatch

import (
	"math/big"

	"github.com/ontanj/cmatch/he"
)

type Side int

const (
	SideBuy Side = iota
	SideSell
)

func (s Side) String() string {
	if s == SideSell {
		return "sell"
	}
	return "buy"
}

func (s Side) Opposite() Side {
	if s == SideSell {
		return SideBuy
	}
	return SideSell
}

// Order is identified by its position on its side, never by value.
type Order struct {
	Index    int
	Quantity uint64
}

// OrderBook is both sides in insertion order, encrypted. The plaintext
// quantities stay private to the book and are only read back for orders the
// engine decided to fill.
type OrderBook struct {
	Buy  []he.Ciphertext
	Sell []he.Ciphertext

	buy  []uint64
	sell []uint64
}

// NewOrderBook validates both sides against the plaintext modulus and the
// comparison bound, then encrypts every quantity. Nothing is encrypted if any
// order is rejected.
func NewOrderBook(cs he.Cryptosystem, bound uint64, buy, sell []uint64) (*OrderBook, error) {
	if err := validateSide(SideBuy, buy, cs.N(), bound); err != nil {
		return nil, err
	}
	if err := validateSide(SideSell, sell, cs.N(), bound); err != nil {
		return nil, err
	}
	book := &OrderBook{
		buy:  append([]uint64(nil), buy...),
		sell: append([]uint64(nil), sell...),
	}
	var err error
	if book.Buy, err = encryptSide(cs, SideBuy, book.buy); err != nil {
		return nil, err
	}
	if book.Sell, err = encryptSide(cs, SideSell, book.sell); err != nil {
		return nil, err
	}
	return book, nil
}

// Orders returns one side in insertion order.
func (b *OrderBook) Orders(side Side) []Order {
	qs := b.quantities(side)
	orders := make([]Order, len(qs))
	for i, q := range qs {
		orders[i] = Order{Index: i, Quantity: q}
	}
	return orders
}

func (b *OrderBook) side(s Side) []he.Ciphertext {
	if s == SideSell {
		return b.Sell
	}
	return b.Buy
}

func (b *OrderBook) quantities(s Side) []uint64 {
	if s == SideSell {
		return b.sell
	}
	return b.buy
}

func validateSide(side Side, qs []uint64, n *big.Int, bound uint64) error {
	if len(qs) == 0 {
		return &InputError{Side: side, Index: -1, Err: ErrEmptySide}
	}
	var total uint64
	for i, q := range qs {
		if new(big.Int).SetUint64(q).Cmp(n) >= 0 {
			return &InputError{Side: side, Index: i, Quantity: q, Err: ErrQuantityOutOfRange}
		}
		// total <= bound holds before the addition, so bound-total cannot underflow
		if q > bound-total {
			return &InputError{Side: side, Index: i, Quantity: q, Err: ErrAggregateOutOfRange}
		}
		total += q
	}
	return nil
}

func encryptSide(cs he.Cryptosystem, side Side, qs []uint64) ([]he.Ciphertext, error) {
	cts := make([]he.Ciphertext, len(qs))
	for i, q := range qs {
		c, err := cs.Encrypt(new(big.Int).SetUint64(q))
		if err != nil {
			return nil, capability("encrypt "+side.String()+" order", err)
		}
		cts[i] = c
	}
	return cts, nil
}
