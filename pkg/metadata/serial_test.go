package metadata

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerialPrefix(t *testing.T) {
	tests := []struct {
		name      string
		assetName string
		expected  string
	}{
		{"long name", "Laptop", "SYS-LAP-"},
		{"lower case", "monitor", "SYS-MON-"},
		{"short name", "Pc", "SYS-PC-"},
		{"single rune", "x", "SYS-X-"},
		{"multibyte", "éclair", "SYS-ÉCL-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SerialPrefix(tt.assetName))
		})
	}
}

func TestNextSerial(t *testing.T) {
	tests := []struct {
		name      string
		assetName string
		existing  []string
		expected  string
	}{
		{"empty history", "Laptop", nil, "SYS-LAP-0001"},
		{"short asset name", "Pc", nil, "SYS-PC-0001"},
		{"non numeric suffix ignored", "Laptop", []string{"SYS-LAP-ABCD"}, "SYS-LAP-0001"},
		{"draft counts", "Laptop", []string{"SYS-LAP-0003"}, "SYS-LAP-0004"},
		{"gaps use maximum", "Laptop", []string{"SYS-LAP-0001", "SYS-LAP-0007", "SYS-LAP-0002"}, "SYS-LAP-0008"},
		{"other prefixes ignored", "Laptop", []string{"SYS-MON-0042", "OLD-LAP-0100"}, "SYS-LAP-0001"},
		{"suffix whitespace trimmed", "Monitor", []string{"SYS-MON- 0005 "}, "SYS-MON-0006"},
		{"grows past width", "Laptop", []string{"SYS-LAP-9999"}, "SYS-LAP-10000"},
		{"malformed mixed with valid", "Laptop", []string{"SYS-LAP-", "SYS-LAP-12a", "SYS-LAP-0002"}, "SYS-LAP-0003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextSerial(tt.assetName, tt.existing))
		})
	}
}

func suffix(t *testing.T, prefix, serial string) *big.Int {
	t.Helper()
	number, ok := SerialNumber(prefix, serial)
	if !assert.True(t, ok, serial) {
		return new(big.Int)
	}
	return number
}

func TestNextSerialIsGreaterThanExisting(t *testing.T) {
	existing := []string{}
	for i := 0; i < 50; i++ {
		next := NextSerial("Scanner", existing)
		assert.True(t, strings.HasPrefix(next, "SYS-SCA-"))

		nextNumber := suffix(t, "SYS-SCA-", next)
		for _, serial := range existing {
			assert.Equal(t, 1, nextNumber.Cmp(suffix(t, "SYS-SCA-", serial)))
		}

		existing = append(existing, next)
	}
}

func TestNextSerialBeyondIntRange(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		expected string
	}{
		{"max int64", []string{"SYS-LAP-9223372036854775807"}, "SYS-LAP-9223372036854775808"},
		{"wider than uint64", []string{"SYS-LAP-99999999999999999999", "SYS-LAP-0005"}, "SYS-LAP-100000000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := NextSerial("Laptop", tt.existing)
			assert.Equal(t, tt.expected, next)

			for _, serial := range tt.existing {
				assert.Equal(t, 1, suffix(t, "SYS-LAP-", next).Cmp(suffix(t, "SYS-LAP-", serial)))
			}
		})
	}
}

func TestSerialNumberRejectsSigns(t *testing.T) {
	_, ok := SerialNumber("SYS-LAP-", "SYS-LAP--5")
	assert.False(t, ok)

	_, ok = SerialNumber("SYS-LAP-", "SYS-LAP-+5")
	assert.False(t, ok)
}

func TestSerialKey(t *testing.T) {
	assert.Equal(t, SerialKey("SYS-LAP-0001"), SerialKey("SYS-LAP-1"))
	assert.Equal(t, SerialKey("SYS-LAP-02"), SerialKey(" SYS-LAP-0002 "))
	assert.NotEqual(t, SerialKey("SYS-LAP-0001"), SerialKey("SYS-MON-0001"))
	assert.Equal(t, "SYS-LAP-ABCD", SerialKey("SYS-LAP-ABCD"))
	assert.Equal(t, "LEGACY", SerialKey("LEGACY"))
}
