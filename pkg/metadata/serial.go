package metadata

import (
	"fmt"
	"math/big"
	"strings"
)

const (
	SerialInit   string = "SYS"
	serialWidth         = 4
	prefixLength        = 3
)

// SerialCode is the human readable identity of one tagged asset unit,
// rendered as SYS-<AAA>-<NNNN>. The number has no upper bound.
type SerialCode struct {
	init     string
	category string
	number   *big.Int
}

func (s *SerialCode) Prefix() string {
	return s.init + "-" + s.category + "-"
}

func (s *SerialCode) GenerateSerial() string {
	return s.Prefix() + fmt.Sprintf("%0*d", serialWidth, s.number)
}

func NewSerialCode(assetName string, number int) SerialCode {
	return newSerialCode(assetName, big.NewInt(int64(number)))
}

func newSerialCode(assetName string, number *big.Int) SerialCode {
	var code SerialCode

	code.init = SerialInit
	code.category = categoryCode(assetName)
	code.number = number

	return code
}

// SerialPrefix returns the SYS-<AAA>- part shared by every serial of an asset type.
func SerialPrefix(assetName string) string {
	code := NewSerialCode(assetName, 0)
	return code.Prefix()
}

// NextSerial picks the serial following the highest numeric suffix found in
// existing. Serials with another prefix or a non numeric suffix are ignored.
func NextSerial(assetName string, existing []string) string {
	prefix := SerialPrefix(assetName)

	maxSerial := new(big.Int)
	for _, serial := range existing {
		number, ok := SerialNumber(prefix, serial)
		if ok && number.Cmp(maxSerial) > 0 {
			maxSerial = number
		}
	}

	code := newSerialCode(assetName, new(big.Int).Add(maxSerial, big.NewInt(1)))
	return code.GenerateSerial()
}

// SerialNumber parses the numeric suffix of serial after prefix. Suffixes of
// any length are accepted; anything but decimal digits is not a number.
func SerialNumber(prefix, serial string) (*big.Int, bool) {
	if !strings.HasPrefix(serial, prefix) {
		return nil, false
	}

	digits := strings.TrimSpace(strings.TrimPrefix(serial, prefix))
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return nil, false
	}

	number, ok := new(big.Int).SetString(digits, 10)
	return number, ok
}

// SerialKey identifies a serial by its prefix and numeric value, so
// SYS-LAP-1 and SYS-LAP-0001 share a key. Serials without a numeric
// suffix are keyed by their trimmed text.
func SerialKey(serial string) string {
	trimmed := strings.TrimSpace(serial)

	idx := strings.LastIndex(trimmed, "-")
	if idx < 0 {
		return trimmed
	}

	prefix := trimmed[:idx+1]
	number, ok := SerialNumber(prefix, trimmed)
	if !ok {
		return trimmed
	}

	return prefix + number.String()
}

func categoryCode(assetName string) string {
	runes := []rune(assetName)
	if len(runes) > prefixLength {
		runes = runes[:prefixLength]
	}

	return strings.ToUpper(string(runes))
}
