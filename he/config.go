package he

const (
	SchemeBFV = "bfv"
	SchemeDJ  = "dj"
)

// Config contains the configurable items for this package.
type Config struct {
	Scheme    string    `long:"scheme" choice:"bfv" choice:"dj" description:"Homomorphic encryption scheme used for the order book"`
	KeyShares int       `long:"key-shares" description:"Number of secret key shares held by the decryption oracle"`
	BFV       BFVConfig `group:"BFV" namespace:"bfv"`
	DJ        DJConfig  `group:"Damgard-Jurik" namespace:"dj"`
}

// BFVConfig selects the lattigo parameter set.
type BFVConfig struct {
	Params           string `long:"params" choice:"PN12QP109" choice:"PN13QP218" choice:"PN14QP438" choice:"PN15QP880" description:"Default lattigo parameter set"`
	PlaintextModulus uint64 `long:"plaintext-modulus" description:"Plaintext modulus T, an NTT friendly prime"`
	Bits             uint   `long:"bits" description:"Bit width of compared values, side totals stay below 2^bits"`
	StatBits         uint   `long:"stat-bits" description:"Statistical hiding of the additive comparison mask, in bits"`
}

// DJConfig sizes the threshold Damgard-Jurik keys.
type DJConfig struct {
	BitSize  int  `long:"bit-size" description:"Modulus size in bits"`
	Bits     uint `long:"bits" description:"Bit width of compared values, side totals stay below 2^bits"`
	StatBits uint `long:"stat-bits" description:"Statistical hiding of the additive comparison mask, in bits"`
}

// NewDefaultConfig creates an instance of the package-specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Scheme:    SchemeBFV,
		KeyShares: 2,
		BFV: BFVConfig{
			// 2^50 + 2^20 + 2^17 + 1, prime and 1 mod 2^16
			Params:           "PN13QP218",
			PlaintextModulus: 1125899908022273,
			Bits:             20,
			StatBits:         28,
		},
		DJ: DJConfig{
			BitSize:  1024,
			Bits:     64,
			StatBits: 80,
		},
	}
}

// Comparison returns the operand width and statistical parameter of the
// selected scheme, in that order.
func (c Config) Comparison() (bits, statBits uint) {
	if c.Scheme == SchemeDJ {
		return c.DJ.Bits, c.DJ.StatBits
	}
	return c.BFV.Bits, c.BFV.StatBits
}
