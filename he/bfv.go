package he

import (
	"crypto/rand"
	"math/big"

	"github.com/ldsec/lattigo/bfv"
	"github.com/ldsec/lattigo/dbfv"
	"github.com/ldsec/lattigo/ring"
	"github.com/pkg/errors"
)

// BFV cryptosystem. Every quantity lives in slot 0 of a batched plaintext, the
// remaining slots stay zero.

type BFVCryptosystem struct {
	params *bfv.Parameters
	pk     *bfv.PublicKey
}

// BFVSecretKey holds the shares of the collective secret key together with a
// transient key pair that decryptions are key-switched to.
type BFVSecretKey struct {
	params *bfv.Parameters
	shares []*bfv.SecretKey
	tsk    *bfv.SecretKey
	tpk    *bfv.PublicKey
}

func bfvDefaultParams(name string) (*bfv.Parameters, bool) {
	switch name {
	case "PN12QP109":
		return bfv.DefaultParams[bfv.PN12QP109], true
	case "PN13QP218":
		return bfv.DefaultParams[bfv.PN13QP218], true
	case "PN14QP438":
		return bfv.DefaultParams[bfv.PN14QP438], true
	case "PN15QP880":
		return bfv.DefaultParams[bfv.PN15QP880], true
	}
	return nil, false
}

// NewBFV builds a BFV cryptosystem whose public key is generated collectively
// from the given number of secret key shares.
func NewBFV(cfg BFVConfig, shares int) (*BFVCryptosystem, *BFVSecretKey, error) {
	if shares < 1 {
		return nil, nil, errors.Wrapf(ErrInvalidParameters, "need at least one key share, got %d", shares)
	}
	defaults, ok := bfvDefaultParams(cfg.Params)
	if !ok {
		return nil, nil, errors.Wrapf(ErrInvalidParameters, "unknown BFV parameter set %q", cfg.Params)
	}
	// copy so the package level defaults stay untouched
	params := *defaults
	params.T = cfg.PlaintextModulus
	if err := checkPlaintextModulus(&params); err != nil {
		return nil, nil, err
	}

	crs, err := genCRS(&params)
	if err != nil {
		return nil, nil, err
	}

	// generate public key
	ckg := dbfv.NewCKGProtocol(&params)
	ckgCombined := ckg.AllocateShares()
	sks := make([]*bfv.SecretKey, shares)
	for i := range sks {
		sks[i] = bfv.NewKeyGenerator(&params).GenSecretKey()
		ckgShare := ckg.AllocateShares()
		ckg.GenShare(sks[i].Get(), crs, ckgShare)
		ckg.AggregateShares(ckgShare, ckgCombined, ckgCombined)
	}
	pk := bfv.NewPublicKey(&params)
	ckg.GenPublicKey(ckgCombined, crs, pk)

	tsk, tpk := bfv.NewKeyGenerator(&params).GenKeyPair()

	cs := &BFVCryptosystem{params: &params, pk: pk}
	sk := &BFVSecretKey{params: &params, shares: sks, tsk: tsk, tpk: tpk}
	return cs, sk, nil
}

// batching needs T prime with T = 1 mod 2N
func checkPlaintextModulus(params *bfv.Parameters) error {
	t := new(big.Int).SetUint64(params.T)
	if params.T < 3 || !t.ProbablyPrime(20) {
		return errors.Wrapf(ErrInvalidParameters, "plaintext modulus %d is not an odd prime", params.T)
	}
	twoN := uint64(2) << params.LogN
	if (params.T-1)%twoN != 0 {
		return errors.Wrapf(ErrInvalidParameters, "plaintext modulus %d is not 1 mod %d", params.T, twoN)
	}
	return nil
}

func genCRS(params *bfv.Parameters) (*ring.Poly, error) {
	moduli := append(append([]uint64{}, params.Qi...), params.Pi...)
	contextKeys, err := ring.NewContextWithParams(1<<params.LogN, moduli)
	if err != nil {
		return nil, errors.Wrap(err, "could not build key context")
	}
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return nil, errors.Wrap(err, "could not sample CRS seed")
	}
	crsGen := ring.NewCRPGenerator(seed, contextKeys)
	return crsGen.ClockNew(), nil
}

func (cs *BFVCryptosystem) N() *big.Int {
	return new(big.Int).SetUint64(cs.params.T)
}

func (cs *BFVCryptosystem) Encrypt(plaintext *big.Int) (Ciphertext, error) {
	if err := checkPlaintext(plaintext, cs.N()); err != nil {
		return nil, err
	}
	pt := encodeBFV(cs.params, plaintext.Uint64())
	encryptor := bfv.NewEncryptorFromPk(cs.params, cs.pk)
	ct := bfv.NewCiphertext(cs.params, 1)
	encryptor.Encrypt(pt, ct)
	return ct, nil
}

func (cs *BFVCryptosystem) Add(a, b Ciphertext) (Ciphertext, error) {
	ac, bc, err := bfvOperands(a, b)
	if err != nil {
		return nil, err
	}
	evaluator := bfv.NewEvaluator(cs.params)
	return evaluator.AddNew(ac, bc), nil
}

// Sub adds the negation of b, scaled by T-1.
func (cs *BFVCryptosystem) Sub(a, b Ciphertext) (Ciphertext, error) {
	neg, err := cs.Scale(b, big.NewInt(-1))
	if err != nil {
		return nil, err
	}
	return cs.Add(a, neg)
}

func (cs *BFVCryptosystem) Scale(c Ciphertext, factor *big.Int) (Ciphertext, error) {
	ct, ok := c.(*bfv.Ciphertext)
	if !ok {
		return nil, ErrForeignCiphertext
	}
	evaluator := bfv.NewEvaluator(cs.params)
	return evaluator.MulScalarNew(ct, reduce(factor, cs.N()).Uint64()), nil
}

// Decrypt runs the public key switching protocol from the collective key to
// the transient key, one share at a time, and decodes slot 0.
func (sk *BFVSecretKey) Decrypt(c Ciphertext) (*big.Int, error) {
	ct, ok := c.(*bfv.Ciphertext)
	if !ok {
		return nil, ErrForeignCiphertext
	}
	pcks := dbfv.NewPCKSProtocol(sk.params, 3.19)
	pcksCombined := pcks.AllocateShares()
	for _, share := range sk.shares {
		pcksShare := pcks.AllocateShares()
		pcks.GenShare(share.Get(), sk.tpk, ct, pcksShare)
		pcks.AggregateShares(pcksShare, pcksCombined, pcksCombined)
	}

	encOut := bfv.NewCiphertext(sk.params, 1)
	pcks.KeySwitch(pcksCombined, ct, encOut)

	decryptor := bfv.NewDecryptor(sk.params, sk.tsk)
	ptres := bfv.NewPlaintext(sk.params)
	decryptor.Decrypt(encOut, ptres)
	return new(big.Int).SetUint64(decodeBFV(sk.params, ptres)), nil
}

func encodeBFV(params *bfv.Parameters, v uint64) *bfv.Plaintext {
	encoder := bfv.NewEncoder(params)
	pt := bfv.NewPlaintext(params)
	encoder.EncodeUint([]uint64{v}, pt)
	return pt
}

func decodeBFV(params *bfv.Parameters, pt *bfv.Plaintext) uint64 {
	encoder := bfv.NewEncoder(params)
	return encoder.DecodeUint(pt)[0]
}

func bfvOperands(a, b Ciphertext) (*bfv.Ciphertext, *bfv.Ciphertext, error) {
	ac, ok := a.(*bfv.Ciphertext)
	if !ok {
		return nil, nil, ErrForeignCiphertext
	}
	bc, ok := b.(*bfv.Ciphertext)
	if !ok {
		return nil, nil, ErrForeignCiphertext
	}
	return ac, bc, nil
}
