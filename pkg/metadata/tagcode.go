package metadata

import (
	"encoding/base64"
	"strings"

	custom_error "assetconsole/pkg/errors"
)

const TagCodeInit string = "QR-"

// EncodeTagCode derives the scannable code stored next to a serial.
// The encoding is reversible, it only hides the plain serial from casual readers.
func EncodeTagCode(serial string) string {
	if serial == "" {
		return ""
	}

	encoded := base64.StdEncoding.EncodeToString([]byte(serial))
	return TagCodeInit + reverse(encoded)
}

// DecodeTagCode returns the serial hidden in code. Codes without the QR- prefix
// yield an empty serial and no error; a malformed payload yields a DecodeError.
func DecodeTagCode(code string) (string, error) {
	if code == "" || !strings.HasPrefix(code, TagCodeInit) {
		return "", nil
	}

	decoded, err := base64.StdEncoding.DecodeString(reverse(strings.TrimPrefix(code, TagCodeInit)))
	if err != nil {
		return "", &custom_error.DecodeError{Code: code, Err: err}
	}

	return string(decoded), nil
}

// VerifyTagCode reports whether code decodes back to serial.
func VerifyTagCode(code, serial string) (bool, error) {
	decoded, err := DecodeTagCode(code)
	if err != nil {
		return false, err
	}

	return decoded != "" && decoded == serial, nil
}

// base64 output is pure ASCII, so reversing bytes reverses characters.
func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	return string(b)
}
