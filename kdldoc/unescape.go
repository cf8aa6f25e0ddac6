package kdldoc

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// unescapeStackThreshold is the size below which unescape uses a
// stack-allocated scratch array; above it, a pool rental is used (spec
// §5.2). Decoded output is never longer than the encoded input, so sizing
// scratch by input length is always sufficient.
const unescapeStackThreshold = 256

var scratchPool = &slicePool{}

// unescapeToString decodes a JSON string payload (no surrounding quotes)
// into a Go string. The scratch buffer used for decoding is scoped to this
// call and released on every exit path.
func unescapeToString(payload []byte) (string, error) {
	if len(payload) <= unescapeStackThreshold {
		var stack [unescapeStackThreshold]byte
		out, err := appendUnescaped(stack[:0], payload)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}

	scratch := scratchPool.get(len(payload))
	defer scratchPool.put(scratch)
	out, err := appendUnescaped(scratch[:0], payload)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// appendUnescaped appends the decoded bytes of a JSON string payload to
// dst, returning the (possibly reallocated) slice.
func appendUnescaped(dst, payload []byte) ([]byte, error) {
	i := 0
	for i < len(payload) {
		c := payload[i]
		if c != '\\' {
			dst = append(dst, c)
			i++
			continue
		}
		i++
		if i >= len(payload) {
			return nil, fmt.Errorf("kdldoc: unterminated escape: %w", ErrInvalidKDL)
		}
		switch payload[i] {
		case '"':
			dst = append(dst, '"')
			i++
		case '\\':
			dst = append(dst, '\\')
			i++
		case '/':
			dst = append(dst, '/')
			i++
		case 'b':
			dst = append(dst, '\b')
			i++
		case 'f':
			dst = append(dst, '\f')
			i++
		case 'n':
			dst = append(dst, '\n')
			i++
		case 'r':
			dst = append(dst, '\r')
			i++
		case 't':
			dst = append(dst, '\t')
			i++
		case 'u':
			i++
			r1, next, err := decodeHex4(payload, i)
			if err != nil {
				return nil, err
			}
			i = next
			r := rune(r1)
			if utf16.IsSurrogate(r) && i+6 <= len(payload) && payload[i] == '\\' && payload[i+1] == 'u' {
				r2, next2, err := decodeHex4(payload, i+2)
				if err == nil {
					if combined := utf16.DecodeRune(r, rune(r2)); combined != utf8.RuneError {
						r = combined
						i = next2
					}
				}
			}
			dst = utf8.AppendRune(dst, r)
		default:
			return nil, fmt.Errorf("kdldoc: invalid escape %q: %w", payload[i], ErrInvalidKDL)
		}
	}
	return dst, nil
}

func decodeHex4(payload []byte, i int) (uint16, int, error) {
	if i+4 > len(payload) {
		return 0, i, fmt.Errorf("kdldoc: truncated \\u escape: %w", ErrInvalidKDL)
	}
	var v uint16
	for k := 0; k < 4; k++ {
		c := payload[i+k]
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= uint16(c - '0')
		case c >= 'a' && c <= 'f':
			v |= uint16(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= uint16(c-'A') + 10
		default:
			return 0, i, fmt.Errorf("kdldoc: invalid \\u escape: %w", ErrInvalidKDL)
		}
	}
	return v, i + 4, nil
}
