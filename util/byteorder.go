package util

import (
	"fmt"
	"strings"
)

// ByteOrder selects how a chunk is read as an unsigned integer before it is
// written out in hexadecimal.
type ByteOrder int

const (
	BigEndian ByteOrder = iota
	LittleEndian
)

// ParseByteOrder accepts "big" or "little", ignoring case.
func ParseByteOrder(s string) (ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "big":
		return BigEndian, nil
	case "little":
		return LittleEndian, nil
	}
	return BigEndian, fmt.Errorf("%w: byte order %q, want \"big\" or \"little\"", ErrInvalidConfiguration, s)
}

// Valid reports whether o is one of the known orders.
func (o ByteOrder) Valid() bool {
	return o == BigEndian || o == LittleEndian
}

func (o ByteOrder) String() string {
	switch o {
	case BigEndian:
		return "big"
	case LittleEndian:
		return "little"
	}
	return fmt.Sprintf("ByteOrder(%d)", int(o))
}

// Set implements pflag.Value.
func (o *ByteOrder) Set(s string) error {
	v, err := ParseByteOrder(s)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Type implements pflag.Value.
func (o *ByteOrder) Type() string {
	return "byteorder"
}

// arrange converts between the order-dependent layout and big endian. The
// conversion is its own inverse.
func (o ByteOrder) arrange(b []byte) []byte {
	out := make([]byte, len(b))
	if o == LittleEndian {
		for i := range b {
			out[len(b)-1-i] = b[i]
		}
		return out
	}
	copy(out, b)
	return out
}
