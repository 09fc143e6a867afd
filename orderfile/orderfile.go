// Package orderfile reads plaintext order books from disk. The CLI encrypts
// them straight away, files are only ever plaintext on the submitting side.
package orderfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

var ErrUnsupportedFormat = errors.New("unsupported order file format")

// Orders is one trading pair with both sides in insertion order.
type Orders struct {
	Pair       string   `json:"pair" yaml:"pair"`
	BuyOrders  []uint64 `json:"buy_orders" yaml:"buy_orders"`
	SellOrders []uint64 `json:"sell_orders" yaml:"sell_orders"`
}

// Load reads a .json, .yaml or .yml order file.
func Load(path string) (*Orders, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read order file")
	}
	return Decode(filepath.Ext(path), buf)
}

// Decode parses buf in the format named by the file extension ext.
func Decode(ext string, buf []byte) (*Orders, error) {
	orders := &Orders{}
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(buf, orders); err != nil {
			return nil, errors.Wrap(err, "invalid json order file")
		}
	case ".yaml", ".yml":
		if err := yaml.UnmarshalStrict(buf, orders); err != nil {
			return nil, errors.Wrap(err, "invalid yaml order file")
		}
	default:
		return nil, errors.Wrap(ErrUnsupportedFormat, ext)
	}
	return orders, nil
}
