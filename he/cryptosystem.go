// Package he holds the homomorphic encryption layer of the matcher: the public
// cryptosystems the engine evaluates with, the secret keys held by the
// decryption oracle and the blinded comparison built on top of both.
package he

import (
	"math/big"

	"github.com/pkg/errors"
)

var (
	// ErrForeignCiphertext is returned when a ciphertext from another scheme is passed in.
	ErrForeignCiphertext = errors.New("ciphertext does not belong to this cryptosystem")
	// ErrPlaintextRange is returned when a plaintext is negative or not below N().
	ErrPlaintextRange = errors.New("plaintext outside of the plaintext space")
	// ErrUnknownScheme signals an unsupported scheme name in the configuration.
	ErrUnknownScheme = errors.New("unknown encryption scheme")
	// ErrInvalidParameters signals a parameter set the scheme cannot be built with.
	ErrInvalidParameters = errors.New("invalid scheme parameters")
)

// Ciphertext is an opaque encrypted value. Every backend asserts its own type.
type Ciphertext interface{}

// Cryptosystem is the public half of a scheme: encryption and the homomorphic
// operations, never decryption. Results are always fresh ciphertexts.
type Cryptosystem interface {
	Encrypt(plaintext *big.Int) (Ciphertext, error)
	Add(a, b Ciphertext) (Ciphertext, error)
	Sub(a, b Ciphertext) (Ciphertext, error)
	Scale(c Ciphertext, factor *big.Int) (Ciphertext, error)
	N() *big.Int // size of plaintext space
}

// SecretKey decrypts ciphertexts of one cryptosystem, combining all of its
// shares internally.
type SecretKey interface {
	Decrypt(c Ciphertext) (*big.Int, error)
}

// Setup generates fresh key material for the configured scheme.
func Setup(cfg Config) (Cryptosystem, SecretKey, error) {
	switch cfg.Scheme {
	case SchemeBFV:
		return NewBFV(cfg.BFV, cfg.KeyShares)
	case SchemeDJ:
		return NewDJ(cfg.DJ, cfg.KeyShares)
	default:
		return nil, nil, errors.Wrap(ErrUnknownScheme, cfg.Scheme)
	}
}

// reduce maps any integer to its representative in [0, n).
func reduce(v, n *big.Int) *big.Int {
	return new(big.Int).Mod(v, n)
}

func checkPlaintext(v, n *big.Int) error {
	if v.Sign() < 0 || v.Cmp(n) >= 0 {
		return errors.Wrapf(ErrPlaintextRange, "%v not in [0, %v)", v, n)
	}
	return nil
}
