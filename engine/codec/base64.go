// Package codec decodes the base64 payloads embedded in glTF data URIs.
// The decoder is table driven and accepts both the standard and the URL-safe alphabet,
// padded or unpadded.
package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrMalformedBase64 is returned when the input has an impossible length, misplaced padding,
// or a byte outside the base64 alphabet.
var ErrMalformedBase64 = errors.New("malformed base64")

// invalidSymbol marks table entries that are not part of the alphabet.
const invalidSymbol = 0xFF

// decodeTable maps every byte to its 6-bit value, or invalidSymbol.
var decodeTable = buildDecodeTable()

func buildDecodeTable() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = invalidSymbol
	}
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	for i := 0; i < len(alphabet); i++ {
		t[alphabet[i]] = byte(i)
	}
	// URL-safe variants
	t['-'] = 62
	t['_'] = 63
	return t
}

// Decode decodes a base64 string into raw bytes.
// A complete 4-character group yields 3 bytes; a final group closed by one '=' yields 2 bytes
// and one closed by "==" yields 1 byte. Unpadded tails of 2 or 3 characters are accepted and
// yield 1 or 2 bytes respectively.
//
// Parameters:
//   - text: the base64 text (without any data URI header)
//
// Returns:
//   - []byte: the decoded bytes, exactly 3*groups - pad long
//   - error: ErrMalformedBase64 (wrapped with the offending position) on invalid input
func Decode(text string) ([]byte, error) {
	n := len(text)
	if n == 0 {
		return []byte{}, nil
	}

	pad := 0
	if text[n-1] == '=' {
		pad++
		if n >= 2 && text[n-2] == '=' {
			pad++
		}
	}
	if pad > 0 && n%4 != 0 {
		return nil, fmt.Errorf("%w: padded input length %d is not a multiple of 4", ErrMalformedBase64, n)
	}

	symbols := n - pad
	groups := symbols / 4
	rem := symbols % 4
	if rem == 1 {
		return nil, fmt.Errorf("%w: dangling character at offset %d", ErrMalformedBase64, symbols-1)
	}

	size := groups * 3
	switch rem {
	case 2:
		size++
	case 3:
		size += 2
	}
	out := make([]byte, size)

	j := 0
	for g := 0; g < groups; g++ {
		i := g * 4
		v, err := pack(text, i, 4)
		if err != nil {
			return nil, err
		}
		out[j] = byte(v >> 16)
		out[j+1] = byte(v >> 8)
		out[j+2] = byte(v)
		j += 3
	}

	if rem > 0 {
		v, err := pack(text, groups*4, rem)
		if err != nil {
			return nil, err
		}
		out[j] = byte(v >> 16)
		if rem == 3 {
			out[j+1] = byte(v >> 8)
		}
	}

	return out, nil
}

// pack folds count symbols starting at offset into the high bits of a 24-bit group.
func pack(text string, offset, count int) (uint32, error) {
	var v uint32
	for k := 0; k < 4; k++ {
		v <<= 6
		if k >= count {
			continue
		}
		c := text[offset+k]
		s := decodeTable[c]
		if s == invalidSymbol {
			return 0, fmt.Errorf("%w: invalid character %q at offset %d", ErrMalformedBase64, c, offset+k)
		}
		v |= uint32(s)
	}
	return v, nil
}

// Encode returns the padded standard base64 encoding of data.
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
