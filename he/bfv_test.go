package he

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBFV(t *testing.T, shares int) (*BFVCryptosystem, *BFVSecretKey) {
	t.Helper()
	cs, sk, err := NewBFV(NewDefaultConfig().BFV, shares)
	require.NoError(t, err)
	return cs, sk
}

func TestEncryptDecrypt(t *testing.T) {
	for _, shares := range []int{1, 3} {
		cs, sk := newTestBFV(t, shares)
		enc, err := cs.Encrypt(big.NewInt(5))
		require.NoError(t, err)
		dec, err := sk.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, uint64(5), dec.Uint64(), "wrong value after decryption with %d shares", shares)
	}
}

func TestEvaluation(t *testing.T) {
	cs, sk := newTestBFV(t, 2)
	enc1, err := cs.Encrypt(big.NewInt(5))
	require.NoError(t, err)
	enc2, err := cs.Encrypt(big.NewInt(6))
	require.NoError(t, err)

	decrypt := func(c Ciphertext) uint64 {
		dec, err := sk.Decrypt(c)
		require.NoError(t, err)
		return dec.Uint64()
	}

	t.Run("add", func(t *testing.T) {
		sum, err := cs.Add(enc1, enc2)
		require.NoError(t, err)
		assert.Equal(t, uint64(11), decrypt(sum))
	})
	t.Run("sub", func(t *testing.T) {
		diff, err := cs.Sub(enc2, enc1)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), decrypt(diff))
	})
	t.Run("sub wraps around the plaintext modulus", func(t *testing.T) {
		diff, err := cs.Sub(enc1, enc2)
		require.NoError(t, err)
		assert.Equal(t, NewDefaultConfig().BFV.PlaintextModulus-1, decrypt(diff))
	})
	t.Run("scale", func(t *testing.T) {
		prod, err := cs.Scale(enc2, big.NewInt(3))
		require.NoError(t, err)
		assert.Equal(t, uint64(18), decrypt(prod))
	})
	t.Run("inputs are left untouched", func(t *testing.T) {
		_, err := cs.Sub(enc1, enc2)
		require.NoError(t, err)
		assert.Equal(t, uint64(5), decrypt(enc1))
		assert.Equal(t, uint64(6), decrypt(enc2))
	})
}

func TestBFVParameters(t *testing.T) {
	cfg := NewDefaultConfig().BFV

	bad := cfg
	bad.Params = "PN11"
	_, _, err := NewBFV(bad, 1)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	bad = cfg
	bad.PlaintextModulus = 65536
	_, _, err = NewBFV(bad, 1)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	bad = cfg
	bad.PlaintextModulus = 7
	_, _, err = NewBFV(bad, 1)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	_, _, err = NewBFV(cfg, 0)
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestBFVRejectsBadInput(t *testing.T) {
	cs, sk := newTestBFV(t, 1)

	_, err := cs.Encrypt(cs.N())
	assert.ErrorIs(t, err, ErrPlaintextRange)
	_, err = cs.Encrypt(big.NewInt(-1))
	assert.ErrorIs(t, err, ErrPlaintextRange)

	enc, err := cs.Encrypt(big.NewInt(1))
	require.NoError(t, err)
	_, err = cs.Add(big.NewInt(1), enc)
	assert.ErrorIs(t, err, ErrForeignCiphertext)
	_, err = cs.Scale("not a ciphertext", big.NewInt(2))
	assert.ErrorIs(t, err, ErrForeignCiphertext)
	_, err = sk.Decrypt(big.NewInt(1))
	assert.ErrorIs(t, err, ErrForeignCiphertext)
}

func TestSetup(t *testing.T) {
	cfg := NewDefaultConfig()
	cs, sk, err := Setup(cfg)
	require.NoError(t, err)
	assert.Equal(t, uint64(1125899908022273), cs.N().Uint64())
	assert.NotNil(t, sk)

	cfg.Scheme = "rsa"
	_, _, err = Setup(cfg)
	assert.ErrorIs(t, err, ErrUnknownScheme)
}
