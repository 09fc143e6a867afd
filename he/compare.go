package he

import (
	"crypto/rand"
	"math"
	"math/big"

	"github.com/pkg/errors"
)

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// Comparator evaluates the encrypted less-than of operands below 2^bits. It is
// the evaluation key of the engine: the public cryptosystem, the mask sizes
// and the handle to the helper queries.
//
// The value z = 2^bits - 1 + b - a has [a < b] as its bit at position bits.
// The engine adds a uniform mask rho of bits+1+statBits bits and has the
// helper decompose z + rho. The high part of the sum, less the high part of
// rho and the borrow out of the low bits, is the answer. The borrow compares
// the encrypted low bits of the sum with the low bits of rho, known in the
// clear, bit by bit: every position is multiplied by a fresh nonzero scalar,
// the list is shuffled and the helper only reports whether one of them is
// zero. A coin flip picks which of the two strict orders that test checks.
//
// The helper sees z + rho, which is within statistical distance 2^-statBits
// of z' + rho for any other z', and a list of uniform nonzero residues with at
// most one zero. Whether the zero is there is the borrow xor the coin. The
// only value revealing the comparison is the returned bit.
type Comparator struct {
	cs       Cryptosystem
	helper   Helper
	bits     uint
	maskSize *big.Int
	offset   *big.Int
	bound    uint64
}

func NewComparator(cs Cryptosystem, helper Helper, bits, statBits uint) (*Comparator, error) {
	if bits == 0 {
		return nil, errors.Wrap(ErrInvalidParameters, "comparison needs at least one bit")
	}
	if statBits == 0 {
		return nil, errors.Wrap(ErrInvalidParameters, "mask needs at least one statistical bit")
	}
	// z + rho < 2^(bits+2+statBits) must not wrap
	if new(big.Int).Lsh(one, bits+2+statBits).Cmp(cs.N()) > 0 {
		return nil, errors.Wrapf(ErrInvalidParameters,
			"plaintext space %v too small for %d bits and %d statistical bits", cs.N(), bits, statBits)
	}
	offset := new(big.Int).Lsh(one, bits)
	offset.Sub(offset, one)
	bound := uint64(math.MaxUint64)
	if offset.IsUint64() {
		bound = offset.Uint64()
	}
	return &Comparator{
		cs:       cs,
		helper:   helper,
		bits:     bits,
		maskSize: new(big.Int).Lsh(one, bits+1+statBits),
		offset:   offset,
		bound:    bound,
	}, nil
}

// Bound is the largest plaintext the comparison stays correct for.
func (c *Comparator) Bound() uint64 {
	return c.bound
}

// LessThan returns an encryption of 1 if a < b and of 0 otherwise.
func (c *Comparator) LessThan(a, b Ciphertext) (Ciphertext, error) {
	diff, err := c.cs.Sub(b, a)
	if err != nil {
		return nil, err
	}
	rho, err := sampleInt(c.maskSize)
	if err != nil {
		return nil, err
	}
	shift, err := c.cs.Encrypt(new(big.Int).Add(c.offset, rho))
	if err != nil {
		return nil, err
	}
	masked, err := c.cs.Add(diff, shift)
	if err != nil {
		return nil, err
	}

	high, low, err := c.helper.Decompose(masked, c.bits)
	if err != nil {
		return nil, errors.Wrap(err, "decompose query failed")
	}
	if uint(len(low)) != c.bits {
		return nil, errors.Errorf("decompose returned %d bits, want %d", len(low), c.bits)
	}
	borrow, err := c.lowerThan(low, rho)
	if err != nil {
		return nil, err
	}

	rhoHigh, err := c.cs.Encrypt(new(big.Int).Rsh(rho, c.bits))
	if err != nil {
		return nil, err
	}
	res, err := c.cs.Sub(high, rhoHigh)
	if err != nil {
		return nil, err
	}
	return c.cs.Sub(res, borrow)
}

// lowerThan returns an encryption of [x < y mod 2^bits] for x given by its
// encrypted bits. It compares 2x+1 with 2y, which are never equal, so testing
// the reverse order yields the negated answer.
func (c *Comparator) lowerThan(x []Ciphertext, y *big.Int) (Ciphertext, error) {
	consts := make([]Ciphertext, 3)
	for i := range consts {
		var err error
		if consts[i], err = c.cs.Encrypt(big.NewInt(int64(i))); err != nil {
			return nil, err
		}
	}
	n := len(x) + 1
	xs := append([]Ciphertext{consts[1]}, x...)
	ys := make([]uint, n)
	for i := 1; i < n; i++ {
		ys[i] = y.Bit(i - 1)
	}

	coin, err := sampleInt(two)
	if err != nil {
		return nil, err
	}
	flip := coin.Sign() != 0

	// position i vanishes iff it is the first one, from the top, where the
	// tested order holds
	terms := make([]Ciphertext, n)
	var above Ciphertext
	for i := n - 1; i >= 0; i-- {
		var t Ciphertext
		if flip {
			t, err = c.cs.Sub(consts[ys[i]+1], xs[i])
		} else {
			t, err = c.cs.Add(xs[i], consts[1-ys[i]])
		}
		if err != nil {
			return nil, err
		}
		if above != nil {
			tripled, err := c.cs.Scale(above, three)
			if err != nil {
				return nil, err
			}
			if t, err = c.cs.Add(t, tripled); err != nil {
				return nil, err
			}
		}
		if terms[i], err = c.blind(t); err != nil {
			return nil, err
		}

		xor := xs[i]
		if ys[i] == 1 {
			if xor, err = c.cs.Sub(consts[1], xs[i]); err != nil {
				return nil, err
			}
		}
		if above == nil {
			above = xor
		} else if above, err = c.cs.Add(above, xor); err != nil {
			return nil, err
		}
	}
	if err := shuffle(terms); err != nil {
		return nil, err
	}

	found, err := c.helper.AnyZero(terms)
	if err != nil {
		return nil, errors.Wrap(err, "zero test query failed")
	}
	if !flip {
		return found, nil
	}
	return c.cs.Sub(consts[1], found)
}

// blind multiplies t by a uniform nonzero scalar and rerandomizes it.
func (c *Comparator) blind(t Ciphertext) (Ciphertext, error) {
	r, err := sampleInt(new(big.Int).Sub(c.cs.N(), one))
	if err != nil {
		return nil, err
	}
	scaled, err := c.cs.Scale(t, r.Add(r, one))
	if err != nil {
		return nil, err
	}
	zero, err := c.cs.Encrypt(new(big.Int))
	if err != nil {
		return nil, err
	}
	return c.cs.Add(scaled, zero)
}

func shuffle(cs []Ciphertext) error {
	for i := len(cs) - 1; i > 0; i-- {
		j, err := sampleInt(big.NewInt(int64(i + 1)))
		if err != nil {
			return err
		}
		k := j.Int64()
		cs[i], cs[k] = cs[k], cs[i]
	}
	return nil
}

// sample a uniform random integer smaller than q
func sampleInt(q *big.Int) (*big.Int, error) {
	v, err := rand.Int(rand.Reader, q)
	if err != nil {
		return nil, errors.Wrap(err, "could not sample mask")
	}
	return v, nil
}
