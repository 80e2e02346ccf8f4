package metadata

import (
	"errors"
	"strings"
	"testing"

	custom_error "assetconsole/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTagCode(t *testing.T) {
	assert.Equal(t, "", EncodeTagCode(""))

	code := EncodeTagCode("SYS-LAP-0001")
	assert.True(t, strings.HasPrefix(code, TagCodeInit))
	assert.NotContains(t, code, "SYS-LAP-0001")
	// base64("SYS-LAP-0001") = "U1lTLUxBUC0wMDAx"
	assert.Equal(t, "QR-xADMw0CUBxULTl1U", code)
}

func TestTagCodeRoundTrip(t *testing.T) {
	var printable strings.Builder
	for c := byte(0x20); c < 0x7f; c++ {
		printable.WriteByte(c)
	}

	inputs := []string{"SYS-LAP-0001", "SYS-PC-0001", "a", "ab", "abc", "Monitor 27\"", printable.String()}
	for i := 0; i < printable.Len(); i++ {
		inputs = append(inputs, printable.String()[i:])
	}

	for _, input := range inputs {
		decoded, err := DecodeTagCode(EncodeTagCode(input))
		require.NoError(t, err)
		assert.Equal(t, input, decoded)
	}
}

func TestDecodeTagCode(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		expected  string
		decodeErr bool
	}{
		{"empty", "", "", false},
		{"no prefix", "not-a-qr-code", "", false},
		{"prefix only", "QR-", "", false},
		{"lower case prefix", "qr-xADMw0CUBxULTl1U", "", false},
		{"valid", "QR-xADMw0CUBxULTl1U", "SYS-LAP-0001", false},
		{"malformed payload", "QR-***", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeTagCode(tt.code)
			if tt.decodeErr {
				var decodeErr *custom_error.DecodeError
				assert.True(t, errors.As(err, &decodeErr))
				assert.Equal(t, tt.code, decodeErr.Code)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, decoded)
		})
	}
}

func TestVerifyTagCode(t *testing.T) {
	ok, err := VerifyTagCode(EncodeTagCode("SYS-MON-0003"), "SYS-MON-0003")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyTagCode(EncodeTagCode("SYS-MON-0003"), "SYS-MON-0004")
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = VerifyTagCode("garbage", "")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = VerifyTagCode("QR-%%%", "SYS-MON-0003")
	assert.Error(t, err)
}
