package util

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// PrefixSeparator joins the bucket prefix and the payload of a level-one name.
const PrefixSeparator = '-'

// MaxNameLength is the longest directory name the encoder will produce
// (NAME_MAX on Linux and macOS).
const MaxNameLength = 255

// BucketDigits returns the zero-padded width of bucket prefixes for a tree
// of the given width: the number of decimal digits in width-1.
func BucketDigits(width int) int {
	if width <= 1 {
		return 1
	}
	return len(strconv.Itoa(width - 1))
}

// NameLength returns the length of the longest name a tree with the given
// shape can contain, which is always a full level-one name.
func NameLength(chunkSize, width int) int {
	return BucketDigits(width) + 1 + 2*chunkSize
}

// EncodeName renders chunk as a directory name. The payload is the uppercase
// hex of chunk read as an unsigned integer in the given order, padded to two
// digits per byte so leading zero bytes survive. Level-one names, the direct
// children of the tree root, carry the bucket index zero-padded to digits
// followed by PrefixSeparator.
func EncodeName(chunk []byte, bucket int, levelOne bool, digits int, order ByteOrder) string {
	payload := strings.ToUpper(hex.EncodeToString(order.arrange(chunk)))
	if !levelOne {
		return payload
	}
	return fmt.Sprintf("%0*d%c%s", digits, bucket, PrefixSeparator, payload)
}

// DecodeName reverses EncodeName. For level-one names bucket is the parsed
// prefix; deeper names return bucket -1. Hex digits of either case are
// accepted. An odd number of digits is legal and yields ceil(n/2) bytes, as
// if the value had been padded with a leading zero nibble.
func DecodeName(name string, levelOne bool, order ByteOrder) (bucket int, payload []byte, err error) {
	bucket = -1
	digits := name
	if levelOne {
		prefix, rest, ok := strings.Cut(name, string(PrefixSeparator))
		if !ok || !isDecimal(prefix) {
			return -1, nil, fmt.Errorf("%w: %q has no bucket prefix", ErrMalformedName, name)
		}
		bucket, err = strconv.Atoi(prefix)
		if err != nil {
			return -1, nil, fmt.Errorf("%w: %q: %w", ErrMalformedName, name, err)
		}
		digits = rest
	}
	if !isHex(digits) {
		return -1, nil, fmt.Errorf("%w: %q is not hexadecimal", ErrMalformedName, name)
	}
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}
	raw, err := hex.DecodeString(digits)
	if err != nil {
		return -1, nil, fmt.Errorf("%w: %q: %w", ErrMalformedName, name, err)
	}
	return bucket, order.arrange(raw), nil
}

// PrefixWidth returns the number of characters before PrefixSeparator in a
// level-one name, or -1 if there is none.
func PrefixWidth(name string) int {
	return strings.IndexByte(name, PrefixSeparator)
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if hexCharToInt(s[i]) < 0 {
			return false
		}
	}
	return true
}

// hexCharToInt converts a hex character to its integer value, or -1.
func hexCharToInt(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c - 'a' + 10)
	case c >= 'A' && c <= 'F':
		return int(c - 'A' + 10)
	default:
		return -1
	}
}
