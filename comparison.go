package cmatch

import (
	"github.com/ontanj/cmatch/he"
)

// ComparisonOracle turns the encrypted comparison bit into a decision. It is
// the only place a comparison result is ever decrypted.
type ComparisonOracle struct {
	cmp    *he.Comparator
	oracle he.Oracle
}

func NewComparisonOracle(cmp *he.Comparator, oracle he.Oracle) *ComparisonOracle {
	return &ComparisonOracle{cmp: cmp, oracle: oracle}
}

// LessThan reports whether a < b.
func (c *ComparisonOracle) LessThan(a, b he.Ciphertext) (bool, error) {
	bit, err := c.cmp.LessThan(a, b)
	if err != nil {
		return false, capability("evaluate comparison", err)
	}
	v, err := c.oracle.Decrypt(bit)
	if err != nil {
		return false, capability("decrypt comparison", err)
	}
	if v == nil || !v.IsUint64() || v.Uint64() > 1 {
		return false, &OracleAnomalyError{Value: v}
	}
	return v.Uint64() == 1, nil
}
