package he

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decryptBit(t *testing.T, sk SecretKey, c Ciphertext) uint64 {
	t.Helper()
	dec, err := sk.Decrypt(c)
	require.NoError(t, err)
	return dec.Uint64()
}

func encryptAll(t *testing.T, cs Cryptosystem, vs ...uint64) []Ciphertext {
	t.Helper()
	out := make([]Ciphertext, len(vs))
	for i, v := range vs {
		var err error
		out[i], err = cs.Encrypt(new(big.Int).SetUint64(v))
		require.NoError(t, err)
	}
	return out
}

func TestKeyHolderDecompose(t *testing.T) {
	cs, sk := newTestBFV(t, 1)
	holder := NewKeyHolder(cs, sk)

	enc := encryptAll(t, cs, 0b1011010)[0]
	high, low, err := holder.Decompose(enc, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(0b101), decryptBit(t, sk, high))
	require.Len(t, low, 4)
	for i, want := range []uint64{0, 1, 0, 1} {
		assert.Equal(t, want, decryptBit(t, sk, low[i]), "bit %d", i)
	}

	_, _, err = holder.Decompose("not a ciphertext", 4)
	assert.ErrorIs(t, err, ErrForeignCiphertext)
}

func TestKeyHolderAnyZero(t *testing.T) {
	cs, sk := newTestBFV(t, 1)
	holder := NewKeyHolder(cs, sk)

	cases := []struct {
		plain []uint64
		found uint64
	}{
		{[]uint64{3, 0, 5}, 1},
		{[]uint64{3, 5}, 0},
		{[]uint64{0}, 1},
		{nil, 0},
	}
	for _, c := range cases {
		found, err := holder.AnyZero(encryptAll(t, cs, c.plain...))
		require.NoError(t, err)
		assert.Equal(t, c.found, decryptBit(t, sk, found), "%v", c.plain)
	}
}

func TestComparatorBound(t *testing.T) {
	cs, sk := newTestBFV(t, 1)
	holder := NewKeyHolder(cs, sk)

	bits, statBits := NewDefaultConfig().Comparison()
	cmp, err := NewComparator(cs, holder, bits, statBits)
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<20-1), cmp.Bound())

	_, err = NewComparator(cs, holder, 0, 28)
	assert.ErrorIs(t, err, ErrInvalidParameters)
	_, err = NewComparator(cs, holder, 20, 0)
	assert.ErrorIs(t, err, ErrInvalidParameters)
	// 2^(20+2+29) exceeds T
	_, err = NewComparator(cs, holder, 20, 29)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	djCS, djSK := newTestDJ(t)
	cmp, err = NewComparator(djCS, NewKeyHolder(djCS, djSK), 64, 80)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), cmp.Bound())
}

func TestBFVLessThan(t *testing.T) {
	cs, sk := newTestBFV(t, 2)
	holder := NewKeyHolder(cs, sk)
	cmp, err := NewComparator(cs, holder, 12, 28)
	require.NoError(t, err)

	pairs := [][2]uint64{
		{4095, 0}, {0, 4095}, {4095, 4095}, {4094, 4095}, {4095, 4094},
		{15, 30}, {30, 15}, {10, 15}, {20, 5}, {2048, 2047}, {2047, 2048},
	}
	for a := uint64(0); a < 3; a++ {
		for b := uint64(0); b < 3; b++ {
			pairs = append(pairs, [2]uint64{a, b})
		}
	}
	for _, p := range pairs {
		enc := encryptAll(t, cs, p[0], p[1])
		// repeat so both coin outcomes are exercised
		for i := 0; i < 3; i++ {
			lt, err := cmp.LessThan(enc[0], enc[1])
			require.NoError(t, err)
			want := uint64(0)
			if p[0] < p[1] {
				want = 1
			}
			assert.Equal(t, want, decryptBit(t, sk, lt), "%d < %d", p[0], p[1])
		}
	}
}

func TestDJLessThan(t *testing.T) {
	cs, sk := newTestDJ(t)
	holder := NewKeyHolder(cs, sk)
	cmp, err := NewComparator(cs, holder, 42, 40)
	require.NoError(t, err)

	pairs := [][2]uint64{{0, 0}, {1, 0}, {0, 1}, {1 << 40, 1<<40 + 1}, {1<<42 - 1, 3}}
	for _, p := range pairs {
		enc := encryptAll(t, cs, p[0], p[1])
		for i := 0; i < 2; i++ {
			lt, err := cmp.LessThan(enc[0], enc[1])
			require.NoError(t, err)
			want := uint64(0)
			if p[0] < p[1] {
				want = 1
			}
			assert.Equal(t, want, decryptBit(t, sk, lt), "%d < %d", p[0], p[1])
		}
	}
}

// spyHelper records in the clear every value the key holder decrypts while
// answering comparison queries.
type spyHelper struct {
	*KeyHolder
	sk        SecretKey
	decompose []*big.Int
	anyZero   [][]*big.Int
}

func (s *spyHelper) Decompose(c Ciphertext, bits uint) (Ciphertext, []Ciphertext, error) {
	v, err := s.sk.Decrypt(c)
	if err != nil {
		return nil, nil, err
	}
	s.decompose = append(s.decompose, v)
	return s.KeyHolder.Decompose(c, bits)
}

func (s *spyHelper) AnyZero(cs []Ciphertext) (Ciphertext, error) {
	vs := make([]*big.Int, len(cs))
	for i, c := range cs {
		v, err := s.sk.Decrypt(c)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	s.anyZero = append(s.anyZero, vs)
	return s.KeyHolder.AnyZero(cs)
}

func TestComparatorHidesOperands(t *testing.T) {
	const bits, statBits = 12, 28
	cs, sk := newTestBFV(t, 1)

	var sawZero, sawNoZero bool
	for _, p := range [][2]uint64{{100, 1000}, {1000, 100}, {500, 503}} {
		spy := &spyHelper{KeyHolder: NewKeyHolder(cs, sk), sk: sk}
		cmp, err := NewComparator(cs, spy, bits, statBits)
		require.NoError(t, err)
		enc := encryptAll(t, cs, p[0], p[1])
		for i := 0; i < 8; i++ {
			lt, err := cmp.LessThan(enc[0], enc[1])
			require.NoError(t, err)
			want := uint64(0)
			if p[0] < p[1] {
				want = 1
			}
			require.Equal(t, want, decryptBit(t, sk, lt))
		}

		// the decomposed sums carry the full additive mask
		require.Len(t, spy.decompose, 8)
		limit := new(big.Int).Lsh(one, bits+2+statBits)
		lo, hi := spy.decompose[0], spy.decompose[0]
		for _, v := range spy.decompose {
			assert.Equal(t, -1, v.Cmp(limit), "%v escapes the mask range", v)
			if v.Cmp(lo) < 0 {
				lo = v
			}
			if v.Cmp(hi) > 0 {
				hi = v
			}
		}
		spread := new(big.Int).Sub(hi, lo)
		assert.Equal(t, 1, spread.Cmp(new(big.Int).Lsh(one, bits+1)),
			"sums for %d < %d spread over %v only", p[0], p[1], spread)

		// zero tests see scrambled positions, never the small unmasked terms
		require.Len(t, spy.anyZero, 8)
		small := big.NewInt(3*(bits+2) + 2)
		for _, vs := range spy.anyZero {
			assert.Len(t, vs, bits+1)
			zeros := 0
			for _, v := range vs {
				if v.Sign() == 0 {
					zeros++
					continue
				}
				assert.Equal(t, 1, v.Cmp(small), "%v leaks an unmasked term", v)
			}
			assert.LessOrEqual(t, zeros, 1)
			if zeros == 0 {
				sawNoZero = true
			} else {
				sawZero = true
			}
		}
	}
	// the coin decouples the zero test from the borrow
	assert.True(t, sawZero)
	assert.True(t, sawNoZero)
}
