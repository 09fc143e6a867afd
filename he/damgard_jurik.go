package he

import (
	"math/big"

	"github.com/niclabs/tcpaillier"
	"github.com/pkg/errors"
)

// Threshold Damgard-Jurik cryptosystem with s = 1, plaintexts live in Z_N.

type DJCryptosystem struct {
	pk *tcpaillier.PubKey
}

// DJSecretKey holds every key share; decryption needs all of them.
type DJSecretKey struct {
	pk     *tcpaillier.PubKey
	shares []*tcpaillier.KeyShare
}

// NewDJ deals bitSize keys split in the given number of shares, all of which
// are required to decrypt.
func NewDJ(cfg DJConfig, shares int) (*DJCryptosystem, *DJSecretKey, error) {
	if shares < 1 || shares > 255 {
		return nil, nil, errors.Wrapf(ErrInvalidParameters, "key shares must be in [1, 255], got %d", shares)
	}
	tcsks, tcpk, err := tcpaillier.NewKey(cfg.BitSize, 1, uint8(shares), uint8(shares))
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not deal Damgard-Jurik keys")
	}
	return &DJCryptosystem{pk: tcpk}, &DJSecretKey{pk: tcpk, shares: tcsks}, nil
}

func (cs *DJCryptosystem) N() *big.Int {
	return new(big.Int).Set(cs.pk.N)
}

func (cs *DJCryptosystem) Encrypt(plaintext *big.Int) (Ciphertext, error) {
	if err := checkPlaintext(plaintext, cs.pk.N); err != nil {
		return nil, err
	}
	c, _, err := cs.pk.Encrypt(plaintext)
	return c, err
}

func (cs *DJCryptosystem) Add(a, b Ciphertext) (Ciphertext, error) {
	ac, bc, err := djOperands(a, b)
	if err != nil {
		return nil, err
	}
	return cs.pk.Add(ac, bc)
}

func (cs *DJCryptosystem) Sub(a, b Ciphertext) (Ciphertext, error) {
	neg, err := cs.Scale(b, big.NewInt(-1))
	if err != nil {
		return nil, err
	}
	return cs.Add(a, neg)
}

func (cs *DJCryptosystem) Scale(c Ciphertext, factor *big.Int) (Ciphertext, error) {
	ct, ok := c.(*big.Int)
	if !ok {
		return nil, ErrForeignCiphertext
	}
	product, _, err := cs.pk.Multiply(ct, reduce(factor, cs.pk.N))
	return product, err
}

func (sk *DJSecretKey) Decrypt(c Ciphertext) (*big.Int, error) {
	ct, ok := c.(*big.Int)
	if !ok {
		return nil, ErrForeignCiphertext
	}
	parts := make([]*tcpaillier.DecryptionShare, len(sk.shares))
	for i, share := range sk.shares {
		part, err := share.PartialDecrypt(ct)
		if err != nil {
			return nil, errors.Wrapf(err, "partial decryption with share %d", i)
		}
		parts[i] = part
	}
	plain, err := sk.pk.CombineShares(parts...)
	if err != nil {
		return nil, errors.Wrap(err, "could not combine decryption shares")
	}
	return plain.Mod(plain, sk.pk.N), nil
}

func djOperands(a, b Ciphertext) (*big.Int, *big.Int, error) {
	ac, ok := a.(*big.Int)
	if !ok {
		return nil, nil, ErrForeignCiphertext
	}
	bc, ok := b.(*big.Int)
	if !ok {
		return nil, nil, ErrForeignCiphertext
	}
	return ac, bc, nil
}
