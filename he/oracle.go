package he

import (
	"math/big"
	"sync"
)

//go:generate go run github.com/golang/mock/mockgen -destination mocks/oracle_mock.go -package mocks github.com/ontanj/cmatch/he Oracle

// Helper answers the two blinded queries of the comparison protocol. Every
// plaintext it sees is masked by the engine, see Comparator.
type Helper interface {
	// Decompose decrypts c and returns an encryption of c >> bits together
	// with encryptions of the low bits of c, least significant first.
	Decompose(c Ciphertext, bits uint) (Ciphertext, []Ciphertext, error)
	// AnyZero returns an encryption of 1 if any of cs decrypts to zero and an
	// encryption of 0 otherwise.
	AnyZero(cs []Ciphertext) (Ciphertext, error)
}

// Oracle is the only party holding decryption key material. Whoever runs it
// learns every value it is asked to decrypt.
type Oracle interface {
	Helper
	Decrypt(c Ciphertext) (*big.Int, error)
}

// KeyHolder is the in-process Oracle. All key use goes through a single mutex
// so one holder can serve several matchers.
type KeyHolder struct {
	mu sync.Mutex
	cs Cryptosystem
	sk SecretKey
}

func NewKeyHolder(cs Cryptosystem, sk SecretKey) *KeyHolder {
	return &KeyHolder{cs: cs, sk: sk}
}

func (k *KeyHolder) Decrypt(c Ciphertext) (*big.Int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.sk.Decrypt(c)
}

func (k *KeyHolder) Decompose(c Ciphertext, bits uint) (Ciphertext, []Ciphertext, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, err := k.sk.Decrypt(c)
	if err != nil {
		return nil, nil, err
	}
	high, err := k.cs.Encrypt(new(big.Int).Rsh(v, bits))
	if err != nil {
		return nil, nil, err
	}
	low := make([]Ciphertext, bits)
	for i := range low {
		if low[i], err = k.cs.Encrypt(big.NewInt(int64(v.Bit(i)))); err != nil {
			return nil, nil, err
		}
	}
	return high, low, nil
}

func (k *KeyHolder) AnyZero(cs []Ciphertext) (Ciphertext, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	found := int64(0)
	for _, c := range cs {
		v, err := k.sk.Decrypt(c)
		if err != nil {
			return nil, err
		}
		if v.Sign() == 0 {
			found = 1
		}
	}
	return k.cs.Encrypt(big.NewInt(found))
}
